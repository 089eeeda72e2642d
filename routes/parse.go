package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/wkalt/msgdef/util/httputil"
	"github.com/wkalt/msgdef/util/log"
	"github.com/wkalt/msgdef/util/ros1msg"
	"github.com/wkalt/msgdef/util/schema"
)

const maxDefinitionBytes = 4 * 1024 * 1024

// ParseResponse is the response to a parse request.
type ParseResponse struct {
	Fields    []schema.FieldDescriptor `json:"fields"`
	FixedSize int                      `json:"fixedSize"`
	Static    bool                     `json:"static"`
}

func newParseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer r.Body.Close()
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDefinitionBytes))
		if err != nil {
			httputil.BadRequest(ctx, w, "error reading request: %s", err)
			return
		}
		pkg := r.URL.Query().Get("package")
		log.Debugw(ctx, "parse request", "package", pkg, "bytes", len(data))
		fields, err := ros1msg.ParseMessageDefinition(data, ros1msg.WithPackage(pkg))
		if err != nil {
			switch {
			case errors.Is(err, ros1msg.UnresolvedTypeError{}),
				errors.Is(err, ros1msg.MalformedDefinitionError{}):
				httputil.BadRequest(ctx, w, "%w", err)
			default:
				httputil.InternalServerError(ctx, w, "error parsing definition: %s", err)
			}
			return
		}
		size, static := schema.FixedSize(fields)
		httputil.WriteJSON(ctx, w, http.StatusOK, ParseResponse{
			Fields:    fields,
			FixedSize: size,
			Static:    static,
		})
	}
}
