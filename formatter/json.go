package formatter

import (
	"encoding/json"
)

// ResponseBuilder serializes response bodies.
type ResponseBuilder struct {
	indent string
}

// NewResponseBuilder creates a builder producing compact JSON
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// WithIndent returns a builder that indents nested values by indent.
func (rb *ResponseBuilder) WithIndent(indent string) *ResponseBuilder {
	return &ResponseBuilder{indent: indent}
}

// BuildJSON serializes v to JSON
func (rb *ResponseBuilder) BuildJSON(v any) ([]byte, error) {
	if rb.indent != "" {
		return json.MarshalIndent(v, "", rb.indent)
	}
	return json.Marshal(v)
}
