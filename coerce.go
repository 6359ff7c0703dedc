package record

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// parseFunc turns a stored value's string form into a value of the target type.
type parseFunc func(s string) (reflect.Value, error)

var (
	parsers   = make(map[reflect.Type]parseFunc)
	parsersMu sync.RWMutex
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

var (
	errNilValue = errors.New("nil value for non-nillable type")
	errNoParser = errors.New("no string parser for type")
	errOverflow = errors.New("value overflows type")
	errLength   = errors.New("array length mismatch")
)

// RegisterParser installs fn as the string parser for field type F.
// It is consulted when a stored value is not assignable to F, after the value
// has been rendered to its string form. A later registration replaces an
// earlier one.
//
//	record.RegisterParser(func(s string) (OrderID, error) {
//	    return ParseOrderID(s)
//	})
func RegisterParser[F any](fn func(string) (F, error)) {
	rt := reflect.TypeFor[F]()

	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers[rt] = func(s string) (reflect.Value, error) {
		v, err := fn(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}
}

// coerceField converts a stored value into the field's declared type.
func coerceField(f Field, raw any) (reflect.Value, error) {
	v, err := coerce(f.Type, raw)
	if err != nil {
		return reflect.Value{}, newCoercionError(f, raw, err)
	}
	return v, nil
}

// coerce returns raw as-is when assignable to target, otherwise converts it.
func coerce(target reflect.Type, raw any) (reflect.Value, error) {
	if raw == nil {
		switch target.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, errNilValue
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch target.Kind() {
	case reflect.Pointer:
		if _, ok := lookupParser(target); !ok {
			ev, err := coerce(target.Elem(), raw)
			if err != nil {
				return reflect.Value{}, err
			}
			ptr := reflect.New(target.Elem())
			ptr.Elem().Set(ev)
			return ptr, nil
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return coerceElements(target, rv)
		}
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		s = fmt.Sprint(raw)
	}

	parse, ok := parserFor(target)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w %s", errNoParser, target)
	}
	return parse(s)
}

// coerceElements converts each element of a stored slice into target's element type.
func coerceElements(target reflect.Type, rv reflect.Value) (reflect.Value, error) {
	n := rv.Len()

	var out reflect.Value
	if target.Kind() == reflect.Array {
		if target.Len() != n {
			return reflect.Value{}, fmt.Errorf("%w: got %d, want %d", errLength, n, target.Len())
		}
		out = reflect.New(target).Elem()
	} else {
		out = reflect.MakeSlice(target, n, n)
	}

	for i := 0; i < n; i++ {
		ev, err := coerce(target.Elem(), rv.Index(i).Interface())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(ev)
	}
	return out, nil
}

func lookupParser(target reflect.Type) (parseFunc, bool) {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	p, ok := parsers[target]
	return p, ok
}

// parserFor picks a registered parser, then encoding.TextUnmarshaler, then a
// builtin parser for the target's kind.
func parserFor(target reflect.Type) (parseFunc, bool) {
	if p, ok := lookupParser(target); ok {
		return p, true
	}

	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		return func(s string) (reflect.Value, error) {
			ptr := reflect.New(target)
			if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return reflect.Value{}, err
			}
			return ptr.Elem(), nil
		}, true
	}

	return builtinParser(target)
}

func builtinParser(target reflect.Type) (parseFunc, bool) {
	switch target.Kind() {
	case reflect.String:
		return func(s string) (reflect.Value, error) {
			return reflect.ValueOf(s).Convert(target), nil
		}, true

	case reflect.Bool:
		return func(s string) (reflect.Value, error) {
			b, err := cast.ToBoolE(s)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(b).Convert(target), nil
		}, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(s string) (reflect.Value, error) {
			n, err := strconv.ParseInt(trimZeroDecimal(s), 10, 64)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(target).Elem()
			if out.OverflowInt(n) {
				return reflect.Value{}, fmt.Errorf("%w %s: %d", errOverflow, target, n)
			}
			out.SetInt(n)
			return out, nil
		}, true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(s string) (reflect.Value, error) {
			n, err := strconv.ParseUint(trimZeroDecimal(s), 10, 64)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(target).Elem()
			if out.OverflowUint(n) {
				return reflect.Value{}, fmt.Errorf("%w %s: %d", errOverflow, target, n)
			}
			out.SetUint(n)
			return out, nil
		}, true

	case reflect.Float32, reflect.Float64:
		return func(s string) (reflect.Value, error) {
			f, err := cast.ToFloat64E(s)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(target).Elem()
			if out.OverflowFloat(f) {
				return reflect.Value{}, fmt.Errorf("%w %s: %g", errOverflow, target, f)
			}
			out.SetFloat(f)
			return out, nil
		}, true

	case reflect.Slice:
		if target.Elem().Kind() == reflect.Uint8 {
			return func(s string) (reflect.Value, error) {
				return reflect.ValueOf([]byte(s)).Convert(target), nil
			}, true
		}
	}

	return nil, false
}

// trimZeroDecimal drops an all-zero fraction so "7.0" parses as an integer.
// Integer strings are always read in base 10: "010" is ten, not eight.
func trimZeroDecimal(s string) string {
	whole, frac, ok := strings.Cut(s, ".")
	if !ok || whole == "" || strings.Trim(frac, "0") != "" {
		return s
	}
	return whole
}
