package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/storage"
)

// MakeTestRoutes starts a test server backed by the given store. It returns
// the server URL and a function to stop it.
func MakeTestRoutes(t *testing.T, store storage.Provider) (string, func()) {
	t.Helper()
	handler := MakeRoutes(store, msgdefs.NewResolver(msgdefs.WithWorkers(2)))
	srv := httptest.NewServer(handler)
	return srv.URL, srv.Close
}
