package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wkalt/msgdef/util"
)

func TestGroupBy(t *testing.T) {
	types := []string{"std_msgs/String", "sensor_msgs/Imu", "std_msgs/String"}
	groups := util.GroupBy(types, func(s string) string { return s })
	assert.Equal(t, map[string][]string{
		"std_msgs/String": {"std_msgs/String", "std_msgs/String"},
		"sensor_msgs/Imu": {"sensor_msgs/Imu"},
	}, groups)
}

func TestOkeys(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	for i := 0; i < 1000; i++ {
		assert.Equal(t, []int{1, 2, 3}, util.Okeys(m))
	}
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		assertion string
		input     uint64
		expected  string
	}{
		{"0 bytes", 0, "0 B"},
		{"1 byte", 1, "1 B"},
		{"50 bytes", 50, "50 B"},
		{"1 kilobyte", 1024, "1 KB"},
		{"1 megabyte", 1024 * 1024, "1 MB"},
		{"1 gigabyte", 1024 * 1024 * 1024, "1 GB"},
		{"1 exabyte", 1024 * 1024 * 1024 * 1024 * 1024 * 1024, "1 EB"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, util.HumanBytes(c.input), c.assertion)
	}
}

func TestWhen(t *testing.T) {
	assert.Equal(t, 1, util.When(true, 1, 2))
	assert.Equal(t, 2, util.When(false, 1, 2))
}

func TestFingerprint(t *testing.T) {
	t.Run("stable", func(t *testing.T) {
		a := util.Fingerprint([]byte("std_msgs"), []byte("string data"))
		b := util.Fingerprint([]byte("std_msgs"), []byte("string data"))
		assert.Equal(t, a, b)
		assert.Len(t, a, 32)
	})
	t.Run("part boundaries matter", func(t *testing.T) {
		assert.NotEqual(t,
			util.Fingerprint([]byte("ab"), []byte("c")),
			util.Fingerprint([]byte("a"), []byte("bc")),
		)
	})
	t.Run("content matters", func(t *testing.T) {
		assert.NotEqual(t,
			util.Fingerprint([]byte("int32 a")),
			util.Fingerprint([]byte("int32 b")),
		)
	})
}
