package jsonl

import (
	"net/http"

	"github.com/gin-gonic/gin/render"
)

// Render is a gin renderer for a sequence of values.
// Use it with gin.Context.Render to route standard response serialization
// through the JSON Lines encoder.
type Render[T any] struct {
	Values []T
}

var _ render.Render = Render[any]{}

// Render writes the content type header and the encoded values.
func (r Render[T]) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return WriteValues(w, r.Values)
}

// WriteContentType sets the JSON Lines content type unless one is already set.
func (r Render[T]) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{MediaType}
	}
}
