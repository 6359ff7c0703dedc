// Package record converts typed records into flat property maps and back.
//
// A record is a Go struct whose exported fields, in declaration order, are
// its components. The package resolves a Descriptor for each record type,
// caches it, and uses it to serialize instances into Properties (field name
// to value, plus a type marker) and to rebuild instances from Properties
// returned by a store.
//
// # Basic Usage
//
//	type Point struct {
//	    X float64 `prop:"x"`
//	    Y float64 `prop:"y"`
//	}
//
//	c, _ := record.New[Point]()
//
//	props, _ := c.Serialize(ctx, Point{X: 1, Y: 2})
//	// {"x": 1.0, "y": 2.0, "__CLASS__": "example.com/geo.Point"}
//
//	p, _ := c.Deserialize(ctx, props)
//	// Point{X: 1, Y: 2}
//
// # Field Naming
//
// The property key defaults to the field name. The prop tag renames a field
// or excludes it:
//
//	prop:"name"  - store under "name"
//	prop:"-"     - not a record component; left zero on construction
//
// The key "__CLASS__" (MarkerKey) is reserved for the type marker.
//
// # Construction
//
// Records are rebuilt by assigning coerced values to fields in declaration
// order. A type may instead designate exactly one constructor taking its
// fields positionally:
//
//	record.RegisterConstructor[Point](func(x, y float64) (Point, error) {
//	    return NewPoint(x, y)
//	})
//
// # Coercion
//
// Stores rarely return the exact Go type that was written: neo4j returns
// int64 for every integer, JSON returns float64, redis returns strings.
// When a stored value is not assignable to its field, it is rendered to a
// string and parsed, using in order:
//
//   - a parser installed with RegisterParser
//   - the field type's encoding.TextUnmarshaler
//   - a builtin parser for bool, integer, float, string and []byte kinds
//
// Slices are converted element by element and pointer fields through their
// element type.
//
// # Type Marker
//
// Serialize writes the record's fully-qualified type name under MarkerKey.
// Deserialize compares it case-insensitively with the target type and fails
// with ErrTypeMismatch on disagreement. A map without a marker is accepted
// unless the codec was built WithRequireMarker.
//
// # Wire Encodings
//
// Properties can be encoded to bytes through a Wire implementation:
//
//   - json - JSON encoding (application/json)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - yaml - YAML encoding (application/yaml)
//   - bson - BSON encoding (application/bson)
//   - toml - TOML encoding (application/toml)
//
// # Stores
//
// Package store persists Properties by key. store.Save and store.Fetch
// combine a Codec with an in-memory, Neo4j (store/graph) or Redis
// (store/redis) backend.
//
// # Errors
//
// Every failure wraps one of the sentinel errors (ErrFieldMissing,
// ErrCoercion, ErrTypeMismatch, ...) and can be inspected with errors.Is and
// errors.As. Calls fail as a whole; no partial map or instance is returned.
package record
