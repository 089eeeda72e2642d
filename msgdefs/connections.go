package msgdefs

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/foxglove/go-rosbag"
	"github.com/foxglove/mcap/go/mcap"
	"github.com/wkalt/msgdef/util"
)

// Connection is a topic in a recording together with the message definition
// its messages were written with.
type Connection struct {
	ID                uint32 `json:"id"`
	Topic             string `json:"topic"`
	Type              string `json:"type"`
	MessageDefinition []byte `json:"-"`
}

// ros1msgEncoding is the MCAP schema encoding of ROS1 message definitions.
const ros1msgEncoding = "ros1msg"

// ErrInvalidRecording is returned when a recording's magic is recognized but
// its index cannot be read.
var ErrInvalidRecording = errors.New("invalid recording")

// ReadConnections reads the connections of a bag or MCAP file, sorted by ID.
func ReadConnections(r io.ReadSeeker) ([]Connection, error) {
	format, err := DetectFormat(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatBag:
		return ReadBagConnections(r)
	case FormatMCAP:
		return ReadMCAPConnections(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadBagConnections reads the connections of a ROS1 bag from its index.
func ReadBagConnections(r io.ReadSeeker) ([]Connection, error) {
	reader, err := rosbag.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build bag reader: %w", ErrInvalidRecording, err)
	}
	info, err := reader.Info()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read bag info: %w", ErrInvalidRecording, err)
	}
	// The index always yields a connection map, even an empty one. A nil map
	// means the input ended before the bag header record.
	if info.Connections == nil {
		return nil, fmt.Errorf("%w: missing bag header", ErrInvalidRecording)
	}
	conns := make([]Connection, 0, len(info.Connections))
	for _, id := range util.Okeys(info.Connections) {
		conn := info.Connections[id]
		conns = append(conns, Connection{
			ID:                conn.Conn,
			Topic:             conn.Topic,
			Type:              conn.Data.Type,
			MessageDefinition: conn.Data.MessageDefinition,
		})
	}
	return conns, nil
}

// ReadMCAPConnections reads the channels of an MCAP file whose schemas are
// ROS1 message definitions. Channels with other schema encodings are skipped.
func ReadMCAPConnections(r io.ReadSeeker) ([]Connection, error) {
	reader, err := mcap.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build mcap reader: %w", ErrInvalidRecording, err)
	}
	defer reader.Close()
	info, err := reader.Info()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read mcap info: %w", ErrInvalidRecording, err)
	}
	conns := []Connection{}
	for _, channel := range info.Channels {
		s, ok := info.Schemas[channel.SchemaID]
		if !ok || s.Encoding != ros1msgEncoding {
			continue
		}
		conns = append(conns, Connection{
			ID:                uint32(channel.ID),
			Topic:             channel.Topic,
			Type:              s.Name,
			MessageDefinition: s.Data,
		})
	}
	slices.SortFunc(conns, func(a, b Connection) int {
		return int(a.ID) - int(b.ID)
	})
	return conns, nil
}
