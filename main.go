package main

import "github.com/wkalt/msgdef/cmd"

func main() {
	cmd.Execute()
}
