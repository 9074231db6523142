package router

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/putrafajarh/mailgate/internal/pkg/goerror"
)

// Request wraps *http.Request with decoding helpers for application handlers.
type Request struct {
	*http.Request
}

// DecodeBody decodes the JSON request body into dst. Malformed or missing
// bodies become a validation error the codec maps to a 400.
func (r *Request) DecodeBody(dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return goerror.NewInvalidFormat("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	return nil
}

// Param returns the named route parameter.
func (r *Request) Param(name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// GetQuery returns the named query string value.
func (r *Request) GetQuery(name string) string {
	return r.URL.Query().Get(name)
}
