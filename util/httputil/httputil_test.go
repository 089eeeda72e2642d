package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/msgdef/util/httputil"
	"github.com/wkalt/msgdef/util/ros1msg"
)

func serve(handler http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/foo", nil)
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestBadRequest(t *testing.T) {
	t.Run("plain message", func(t *testing.T) {
		recorder := serve(func(w http.ResponseWriter, r *http.Request) {
			httputil.BadRequest(r.Context(), w, "bad request")
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		require.Equal(t, `{"error":"bad request"}`+"\n", recorder.Body.String())
	})
	t.Run("wrapped detailer", func(t *testing.T) {
		recorder := serve(func(w http.ResponseWriter, r *http.Request) {
			err := ros1msg.UnresolvedTypeError{Type: "Widget", Field: "w"}
			httputil.BadRequest(r.Context(), w, "failed to parse: %w", err)
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.JSONEq(t, `{
			"error": "failed to parse: unresolved type Widget for field w",
			"detail": "Widget is not a primitive type and no sub-definition named Widget appears after the definition that references it"
		}`, recorder.Body.String())
	})
}

func TestNotFound(t *testing.T) {
	recorder := serve(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(r.Context(), w, "recording %s not found", "a.mcap")
	})
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, `{"error":"recording a.mcap not found"}`+"\n", recorder.Body.String())
}

func TestInternalServerError(t *testing.T) {
	recorder := serve(func(w http.ResponseWriter, r *http.Request) {
		httputil.InternalServerError(r.Context(), w, "disk on fire")
	})
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	require.Equal(t, `{"error":"internal server error"}`+"\n", recorder.Body.String())
}

func TestWriteJSON(t *testing.T) {
	recorder := serve(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(r.Context(), w, http.StatusCreated, map[string]int{"n": 1})
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Equal(t, `{"n":1}`+"\n", recorder.Body.String())
}
