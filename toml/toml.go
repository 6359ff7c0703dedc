// Package toml provides a TOML encoding of property maps.
package toml

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/zoobzio/record"
)

// tomlWire implements record.Wire for TOML.
type tomlWire struct{}

// New returns a TOML wire encoding.
func New() record.Wire {
	return &tomlWire{}
}

// ContentType returns the MIME type for TOML.
func (c *tomlWire) ContentType() string {
	return "application/toml"
}

// Marshal encodes v as a TOML document. TOML has no null value.
func (c *tomlWire) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes TOML data into v. Integers decode as int64.
func (c *tomlWire) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}
