// Package yaml provides a YAML encoding of property maps.
package yaml

import (
	"github.com/zoobzio/record"
	"gopkg.in/yaml.v3"
)

// yamlWire implements record.Wire for YAML.
type yamlWire struct{}

// New returns a YAML wire encoding.
func New() record.Wire {
	return &yamlWire{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlWire) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlWire) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlWire) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
