package record

// Wire provides content-type aware byte encoding of property maps.
// Implementations live in the json, msgpack, yaml, bson and toml packages.
type Wire interface {
	// ContentType returns the MIME type for this encoding (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
