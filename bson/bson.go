// Package bson provides a BSON encoding of property maps.
package bson

import (
	"github.com/zoobzio/record"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonWire implements record.Wire for BSON.
type bsonWire struct{}

// New returns a BSON wire encoding.
func New() record.Wire {
	return &bsonWire{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonWire) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document. v must be a map or struct.
func (c *bsonWire) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v. Arrays decode as bson.A.
func (c *bsonWire) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
