// JSON renderer: the aggregated sections as one pretty-printed array, the
// format consumed by the help bot.

package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/hwscrape/core"
)

// JSONRenderer produces the JSON array of sections.
type JSONRenderer struct {
	Indent string
}

// NewJSONRenderer creates a JSONRenderer with two-space indentation.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{Indent: "  "}
}

// Render marshals sections as a JSON array. An empty or nil slice renders
// as "[]". HTML characters in bodies are kept literal.
func (r *JSONRenderer) Render(sections []core.Section) ([]byte, error) {
	if sections == nil {
		sections = []core.Section{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", r.Indent)
	if err := enc.Encode(sections); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
