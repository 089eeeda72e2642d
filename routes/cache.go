package routes

import (
	"net/http"

	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/util/httputil"
	"github.com/wkalt/msgdef/util/log"
)

func newCacheStatsHandler(resolver *msgdefs.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(r.Context(), w, http.StatusOK, resolver.Stats())
	}
}

func newCacheResetHandler(resolver *msgdefs.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log.Warnw(ctx, "resetting definition cache", "entries", resolver.Stats().Entries)
		resolver.Reset()
		w.WriteHeader(http.StatusNoContent)
	}
}
