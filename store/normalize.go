package store

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/zoobzio/record"
)

// Normalize converts a property value into the primitive shapes external
// stores accept: nil, bool, int64, float64, string, time.Time, []byte, and
// []any of those. Text marshalers and Stringers become their string form,
// which the codec parses back on read. Pointers are followed.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		return Normalize(rv.Elem().Interface())
	}

	switch x := v.(type) {
	case string, bool, int64, float64, time.Time, []byte:
		return x, nil
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%w: %T: %w", ErrUnsupportedValue, v, err)
		}
		return string(b), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %T %d overflows int64", ErrUnsupportedValue, v, u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			e, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// NormalizeProperties applies Normalize to every value of p.
func NormalizeProperties(p record.Properties) (record.Properties, error) {
	out := make(record.Properties, len(p))
	for k, v := range p {
		nv, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}
