package shared

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// URLID extracts a positive integer route parameter.
func URLID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
