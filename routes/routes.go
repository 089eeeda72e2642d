package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/storage"
	"github.com/wkalt/msgdef/util/mw"
)

/*
Routes for the message definition service. Definitions can be resolved
directly from a request body, or from the connections of a recording held in
the storage provider.
*/

////////////////////////////////////////////////////////////////////////////////

// MakeRoutes builds the service router.
func MakeRoutes(store storage.Provider, resolver *msgdefs.Resolver) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw.WithRequestID, mw.WithRequestLogging)
	r.HandleFunc("/healthz", newHealthzHandler()).Methods(http.MethodGet)
	r.HandleFunc("/definitions/parse", newParseHandler()).Methods(http.MethodPost)
	r.HandleFunc("/cache", newCacheStatsHandler(resolver)).Methods(http.MethodGet)
	r.HandleFunc("/cache", newCacheResetHandler(resolver)).Methods(http.MethodDelete)
	r.HandleFunc("/recordings", newListRecordingsHandler(store)).Methods(http.MethodGet)
	r.HandleFunc("/recordings/{key:.+}/definitions", newRecordingDefinitionsHandler(store, resolver)).
		Methods(http.MethodGet)
	r.HandleFunc("/recordings/{key:.+}", newPutRecordingHandler(store)).Methods(http.MethodPut)
	r.HandleFunc("/recordings/{key:.+}", newDeleteRecordingHandler(store)).Methods(http.MethodDelete)
	return r
}

func newHealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}
