// Package json provides a JSON encoding of property maps.
package json

import (
	"github.com/goccy/go-json"
	"github.com/zoobzio/record"
)

// jsonWire implements record.Wire for JSON.
type jsonWire struct{}

// New returns a JSON wire encoding.
func New() record.Wire {
	return &jsonWire{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonWire) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonWire) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v. Numbers decode as float64.
func (c *jsonWire) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
