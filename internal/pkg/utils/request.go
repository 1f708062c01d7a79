package utils

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// DecodeJSONBody decodes the request body into dst. An empty body decodes to
// the zero value of dst.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// QueryParamOrDefault returns the named query parameter, or fallback when the
// parameter is absent or empty.
func QueryParamOrDefault(r *http.Request, name, fallback string) string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	return value
}
