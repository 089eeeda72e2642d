package routes

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/storage"
	"github.com/wkalt/msgdef/util/httputil"
	"github.com/wkalt/msgdef/util/log"
	"github.com/wkalt/msgdef/util/ros1msg"
)

const maxRecordingBytes = 1024 * 1024 * 1024

// ListRecordingsResponse is the response to a recording listing.
type ListRecordingsResponse struct {
	Recordings []string `json:"recordings"`
}

// DefinitionsResponse lists the resolved connections of a recording.
type DefinitionsResponse struct {
	Key         string             `json:"key"`
	Connections []msgdefs.Resolved `json:"connections"`
}

func newListRecordingsHandler(store storage.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ids, err := store.List(ctx)
		if err != nil {
			httputil.InternalServerError(ctx, w, "error listing recordings: %s", err)
			return
		}
		httputil.WriteJSON(ctx, w, http.StatusOK, ListRecordingsResponse{Recordings: ids})
	}
}

func newPutRecordingHandler(store storage.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := mux.Vars(r)["key"]
		defer r.Body.Close()
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordingBytes))
		if err != nil {
			httputil.BadRequest(ctx, w, "error reading request: %s", err)
			return
		}
		log.Infow(ctx, "storing recording", "key", key, "bytes", len(data))
		if err := store.Put(ctx, key, data); err != nil {
			if errors.Is(err, storage.ErrInvalidObjectID) {
				httputil.BadRequest(ctx, w, "%w", err)
				return
			}
			httputil.InternalServerError(ctx, w, "error storing recording: %s", err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func newDeleteRecordingHandler(store storage.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := mux.Vars(r)["key"]
		log.Infow(ctx, "deleting recording", "key", key)
		if err := store.Delete(ctx, key); err != nil {
			if errors.Is(err, storage.ErrInvalidObjectID) {
				httputil.BadRequest(ctx, w, "%w", err)
				return
			}
			httputil.InternalServerError(ctx, w, "error deleting recording: %s", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func newRecordingDefinitionsHandler(store storage.Provider, resolver *msgdefs.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := mux.Vars(r)["key"]
		ctx = log.AddTags(ctx, "recording", key)
		rsc, err := store.Get(ctx, key)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrObjectNotFound):
				httputil.NotFound(ctx, w, "recording %s not found", key)
			case errors.Is(err, storage.ErrInvalidObjectID):
				httputil.BadRequest(ctx, w, "%w", err)
			default:
				httputil.InternalServerError(ctx, w, "error opening recording: %s", err)
			}
			return
		}
		defer rsc.Close()
		results, err := resolver.ResolveRecording(ctx, rsc)
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled):
			case errors.Is(err, msgdefs.ErrUnsupportedFormat),
				errors.Is(err, msgdefs.ErrInvalidRecording),
				errors.Is(err, ros1msg.UnresolvedTypeError{}),
				errors.Is(err, ros1msg.MalformedDefinitionError{}):
				httputil.BadRequest(ctx, w, "failed to resolve recording %s: %w", key, err)
			default:
				httputil.InternalServerError(ctx, w, "error resolving recording %s: %s", key, err)
			}
			return
		}
		httputil.WriteJSON(ctx, w, http.StatusOK, DefinitionsResponse{Key: key, Connections: results})
	}
}
