package render

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes values as JSON lines to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes v on a single line.
func (r *JSONRenderer) Render(v any) error {
	return json.NewEncoder(r.W).Encode(v)
}
