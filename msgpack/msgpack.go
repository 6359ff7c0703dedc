// Package msgpack provides a MessagePack encoding of property maps.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/record"
)

// msgpackWire implements record.Wire for MessagePack.
type msgpackWire struct{}

// New returns a MessagePack wire encoding.
func New() record.Wire {
	return &msgpackWire{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackWire) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackWire) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v. Integers decode into the
// smallest Go integer type that holds them.
func (c *msgpackWire) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
