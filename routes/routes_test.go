package routes_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/routes"
	"github.com/wkalt/msgdef/storage"
	"github.com/wkalt/msgdef/util"
	"github.com/wkalt/msgdef/util/testutils"
)

func do(t *testing.T, method, url string, body []byte) (int, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHealthz(t *testing.T) {
	url, stop := routes.MakeTestRoutes(t, storage.NewMemStore())
	defer stop()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url+"/healthz", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestParseHandler(t *testing.T) {
	url, stop := routes.MakeTestRoutes(t, storage.NewMemStore())
	defer stop()
	cases := []struct {
		assertion string
		query     string
		body      []byte
		status    int
		response  string
	}{
		{
			"static definition",
			"",
			[]byte("float64 x\nfloat64 y\nuint8[4] rgba"),
			http.StatusOK,
			`{
				"fields": [
					{"name": "x", "type": "float64"},
					{"name": "y", "type": "float64"},
					{"name": "rgba", "type": "array", "elementType": "uint8", "fixedLength": 4,
					 "elements": [{"name": "rgba", "type": "uint8"}]}
				],
				"fixedSize": 20,
				"static": true
			}`,
		},
		{
			"package-relative lookup",
			"?package=b_msgs",
			testutils.MessageDefinition(
				"Status status",
				util.NewNamed("a_msgs/Status", "int8 a"),
				util.NewNamed("b_msgs/Status", "string b"),
			),
			http.StatusOK,
			`{
				"fields": [
					{"name": "status.b", "type": "array", "elementType": "char",
					 "elements": [{"name": "b", "type": "char"}]}
				],
				"fixedSize": 0,
				"static": false
			}`,
		},
		{
			"empty definition",
			"",
			[]byte{},
			http.StatusOK,
			`{"fields": [], "fixedSize": 0, "static": true}`,
		},
		{
			"unresolved type",
			"",
			[]byte("Widget w"),
			http.StatusBadRequest,
			`{
				"error": "failed to resolve main definition: unresolved type Widget for field w",
				"detail": "Widget is not a primitive type and no sub-definition named Widget appears after the definition that references it"
			}`,
		},
		{
			"malformed definition",
			"",
			[]byte("int32[x] a"),
			http.StatusBadRequest,
			"",
		},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			status, body := do(t, http.MethodPost, url+"/definitions/parse"+c.query, c.body)
			require.Equal(t, c.status, status, string(body))
			if c.response != "" {
				require.JSONEq(t, c.response, string(body))
			} else {
				require.Contains(t, string(body), "malformed message definition")
			}
		})
	}
	t.Run("wrong method", func(t *testing.T) {
		status, _ := do(t, http.MethodGet, url+"/definitions/parse", nil)
		require.Equal(t, http.StatusMethodNotAllowed, status)
	})
}

func TestRecordingHandlers(t *testing.T) {
	url, stop := routes.MakeTestRoutes(t, storage.NewDirectoryStore(t.TempDir()))
	defer stop()

	buf := &bytes.Buffer{}
	testutils.WriteMCAP(t, buf,
		testutils.MCAPChannel{
			Topic: "/chatter", SchemaName: "std_msgs/String",
			SchemaEncoding: "ros1msg", SchemaData: []byte("string data"),
		},
		testutils.MCAPChannel{
			Topic: "/odom", SchemaName: "nav_msgs/Odometry",
			SchemaEncoding: "ros1msg", SchemaData: []byte("float64[36] covariance"),
		},
	)

	t.Run("upload", func(t *testing.T) {
		status, _ := do(t, http.MethodPut, url+"/recordings/robots/run1.mcap", buf.Bytes())
		require.Equal(t, http.StatusCreated, status)
		status, _ = do(t, http.MethodPut, url+"/recordings/notes.txt", []byte("not a recording"))
		require.Equal(t, http.StatusCreated, status)
	})
	t.Run("list", func(t *testing.T) {
		status, body := do(t, http.MethodGet, url+"/recordings", nil)
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `{"recordings": ["notes.txt", "robots/run1.mcap"]}`, string(body))
	})
	t.Run("definitions", func(t *testing.T) {
		status, body := do(t, http.MethodGet, url+"/recordings/robots/run1.mcap/definitions", nil)
		require.Equal(t, http.StatusOK, status, string(body))
		response := routes.DefinitionsResponse{}
		require.NoError(t, json.Unmarshal(body, &response))
		require.Equal(t, "robots/run1.mcap", response.Key)
		require.Len(t, response.Connections, 2)

		chatter := response.Connections[0]
		require.Equal(t, "/chatter", chatter.Topic)
		require.Equal(t, "std_msgs/String", chatter.Type)
		require.False(t, chatter.Static)
		require.Len(t, chatter.Fields, 1)
		require.Equal(t, "data", chatter.Fields[0].Name())

		odom := response.Connections[1]
		require.Equal(t, uint32(1), odom.ID)
		require.True(t, odom.Static)
		require.Equal(t, 288, odom.FixedSize)
	})
	t.Run("unsupported recording", func(t *testing.T) {
		status, body := do(t, http.MethodGet, url+"/recordings/notes.txt/definitions", nil)
		require.Equal(t, http.StatusBadRequest, status)
		require.Contains(t, string(body), "unsupported recording format")
	})
	t.Run("missing recording", func(t *testing.T) {
		status, body := do(t, http.MethodGet, url+"/recordings/missing.bag/definitions", nil)
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `{"error": "recording missing.bag not found"}`, string(body))
	})
	t.Run("delete", func(t *testing.T) {
		status, _ := do(t, http.MethodDelete, url+"/recordings/robots/run1.mcap", nil)
		require.Equal(t, http.StatusNoContent, status)
		status, _ = do(t, http.MethodGet, url+"/recordings/robots/run1.mcap/definitions", nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}

// failingReader is a recording whose reads fail.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error)       { return 0, errors.New("connection reset") }
func (failingReader) Seek(int64, int) (int64, error) { return 0, nil }
func (failingReader) Close() error                   { return nil }

// unreadableStore serves every stored recording through a failingReader.
type unreadableStore struct {
	*storage.MemStore
}

func (s unreadableStore) Get(ctx context.Context, id string) (io.ReadSeekCloser, error) {
	if _, err := s.MemStore.Get(ctx, id); err != nil {
		return nil, err
	}
	return failingReader{}, nil
}

func TestRecordingDefinitionErrors(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		assertion string
		store     storage.Provider
		data      []byte
		status    int
		contains  string
	}{
		{
			"unsupported format",
			storage.NewMemStore(),
			[]byte("not a recording"),
			http.StatusBadRequest,
			msgdefs.ErrUnsupportedFormat.Error(),
		},
		{
			"truncated bag",
			storage.NewMemStore(),
			[]byte("#ROSBAG V2.0\n"),
			http.StatusBadRequest,
			msgdefs.ErrInvalidRecording.Error(),
		},
		{
			"unresolvable definition",
			storage.NewMemStore(),
			testutils.WriteBag(t, testutils.BagConnection{
				Topic: "/broken", Type: "pkg/Broken", MessageDefinition: []byte("Missing m"),
			}),
			http.StatusBadRequest,
			"unresolved type Missing",
		},
		{
			"storage read failure",
			unreadableStore{storage.NewMemStore()},
			[]byte("#ROSBAG V2.0\n"),
			http.StatusInternalServerError,
			"internal server error",
		},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			require.NoError(t, c.store.Put(ctx, "recording", c.data))
			url, stop := routes.MakeTestRoutes(t, c.store)
			defer stop()
			status, body := do(t, http.MethodGet, url+"/recordings/recording/definitions", nil)
			require.Equal(t, c.status, status, string(body))
			require.Contains(t, string(body), c.contains)
		})
	}
}

func TestBagRecordingDefinitions(t *testing.T) {
	url, stop := routes.MakeTestRoutes(t, storage.NewMemStore())
	defer stop()
	bag := testutils.WriteBag(t,
		testutils.BagConnection{Topic: "/chatter", Type: "std_msgs/String", MessageDefinition: []byte("string data")},
		testutils.BagConnection{Topic: "/count", Type: "std_msgs/Int32", MessageDefinition: []byte("int32 data")},
	)
	status, _ := do(t, http.MethodPut, url+"/recordings/run.bag", bag)
	require.Equal(t, http.StatusCreated, status)
	status, body := do(t, http.MethodGet, url+"/recordings/run.bag/definitions", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	response := routes.DefinitionsResponse{}
	require.NoError(t, json.Unmarshal(body, &response))
	require.Len(t, response.Connections, 2)
	require.Equal(t, "/count", response.Connections[1].Topic)
	require.True(t, response.Connections[1].Static)
	require.Equal(t, 4, response.Connections[1].FixedSize)
}

func TestCacheHandlers(t *testing.T) {
	url, stop := routes.MakeTestRoutes(t, storage.NewMemStore())
	defer stop()
	stats := func() util.CacheStats {
		t.Helper()
		status, body := do(t, http.MethodGet, url+"/cache", nil)
		require.Equal(t, http.StatusOK, status)
		result := util.CacheStats{}
		require.NoError(t, json.Unmarshal(body, &result))
		return result
	}
	require.Equal(t, util.CacheStats{}, stats())

	bag := testutils.WriteBag(t,
		testutils.BagConnection{Topic: "/a", Type: "std_msgs/String", MessageDefinition: []byte("string data")},
		testutils.BagConnection{Topic: "/b", Type: "std_msgs/String", MessageDefinition: []byte("string data")},
	)
	status, _ := do(t, http.MethodPut, url+"/recordings/run.bag", bag)
	require.Equal(t, http.StatusCreated, status)
	status, _ = do(t, http.MethodGet, url+"/recordings/run.bag/definitions", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), stats().Entries)

	status, _ = do(t, http.MethodDelete, url+"/cache", nil)
	require.Equal(t, http.StatusNoContent, status)
	require.Equal(t, util.CacheStats{}, stats())
}
