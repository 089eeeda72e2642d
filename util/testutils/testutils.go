package testutils

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/foxglove/go-rosbag"
	"github.com/foxglove/mcap/go/mcap"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/msgdef/util"
)

/*
General purpose test utilitites.
*/

////////////////////////////////////////////////////////////////////////////////

// Separator is the line that introduces a sub-definition in a message
// definition.
var Separator = strings.Repeat("=", 80) // nolint:gochecknoglobals

// GetOpenPort returns an open port that can be used for testing.
func GetOpenPort() (int, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("failed to get open port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// TrimLeadingSpace removes leading whitespace from each line of s.
func TrimLeadingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// MessageDefinition assembles a message definition from a main definition and
// named sub-definitions, in the layout produced by the ROS tooling. Leading
// whitespace is trimmed from every line.
func MessageDefinition(main string, subdefinitions ...util.Named[string]) []byte {
	sb := &strings.Builder{}
	sb.WriteString(strings.Trim(TrimLeadingSpace(main), "\n"))
	sb.WriteString("\n")
	for _, sub := range subdefinitions {
		sb.WriteString(Separator + "\n")
		sb.WriteString("MSG: " + sub.Name + "\n")
		sb.WriteString(strings.Trim(TrimLeadingSpace(sub.Value), "\n"))
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// MCAPChannel describes a channel and its schema for WriteMCAP.
type MCAPChannel struct {
	Topic          string
	SchemaName     string
	SchemaEncoding string
	SchemaData     []byte
}

// WriteMCAP writes an MCAP file with one schema, one channel and one message
// per supplied channel.
func WriteMCAP(t *testing.T, w io.Writer, channels ...MCAPChannel) {
	t.Helper()
	writer, err := mcap.NewWriter(w, &mcap.WriterOptions{
		IncludeCRC:  true,
		Chunked:     true,
		ChunkSize:   1024 * 1024,
		Compression: "zstd",
	})
	require.NoError(t, err)
	require.NoError(t, writer.WriteHeader(&mcap.Header{Profile: "ros1"}))
	for i, c := range channels {
		schemaID := uint16(i + 1)
		channelID := uint16(i)
		require.NoError(t, writer.WriteSchema(&mcap.Schema{
			ID:       schemaID,
			Name:     c.SchemaName,
			Encoding: c.SchemaEncoding,
			Data:     c.SchemaData,
		}))
		require.NoError(t, writer.WriteChannel(&mcap.Channel{
			ID:              channelID,
			SchemaID:        schemaID,
			Topic:           c.Topic,
			MessageEncoding: "ros1",
		}))
		require.NoError(t, writer.WriteMessage(&mcap.Message{
			ChannelID: channelID,
			LogTime:   uint64(i),
			Data:      []byte{},
		}))
	}
	require.NoError(t, writer.Close())
}

// BagConnection describes a connection for WriteBag.
type BagConnection struct {
	Topic             string
	Type              string
	MessageDefinition []byte
}

// WriteBag returns an indexed ROS1 bag with one connection and one message per
// supplied connection. Connection IDs follow argument order from zero. The bag
// writer fills in the index position by seeking, so the bag is written to a
// temporary file.
func WriteBag(t *testing.T, conns ...BagConnection) []byte {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.bag")
	require.NoError(t, err)
	defer f.Close()
	writer, err := rosbag.NewWriter(f)
	require.NoError(t, err)
	for i, c := range conns {
		id := uint32(i)
		require.NoError(t, writer.WriteConnection(&rosbag.Connection{
			Conn:  id,
			Topic: c.Topic,
			Data: rosbag.ConnectionHeader{
				Topic:             c.Topic,
				Type:              c.Type,
				MD5Sum:            "*",
				MessageDefinition: c.MessageDefinition,
			},
		}))
		require.NoError(t, writer.WriteMessage(&rosbag.Message{
			Conn: id,
			Time: uint64(i),
			Data: []byte{},
		}))
	}
	require.NoError(t, writer.Close())
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return data
}
