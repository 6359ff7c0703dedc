package record

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Option configures a Codec.
type Option func(*options)

type options struct {
	requireMarker bool
}

// WithRequireMarker rejects property maps that carry no MarkerKey entry.
// By default an absent marker skips the type check, so a map written for a
// different type with the same field shape deserializes without error.
func WithRequireMarker() Option {
	return func(o *options) {
		o.requireMarker = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Codec converts between T and Properties.
//
// Codecs hold no mutable state and are safe for concurrent use.
type Codec[T any] struct {
	desc *Descriptor
	opts options
}

// New resolves T's descriptor and returns a Codec for it.
func New[T any](opts ...Option) (*Codec[T], error) {
	d, err := Resolve[T]()
	if err != nil {
		return nil, err
	}
	return &Codec[T]{desc: d, opts: buildOptions(opts)}, nil
}

// Descriptor returns the descriptor the codec was built with.
func (c *Codec[T]) Descriptor() *Descriptor {
	return c.desc
}

// Serialize reads every field of v into a new Properties map and adds the
// MarkerKey entry. Field values are shared with v, not copied.
func (c *Codec[T]) Serialize(ctx context.Context, v T) (Properties, error) {
	start := time.Now()
	emitSerializeStart(ctx, c.desc.typeName)

	props, err := encode(c.desc, reflect.ValueOf(&v).Elem())
	emitSerializeComplete(ctx, c.desc.typeName, "", 0, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return props, nil
}

// Deserialize builds a new T from p. Every field must be present; values
// not assignable to the field type are coerced from their string form.
func (c *Codec[T]) Deserialize(ctx context.Context, p Properties) (T, error) {
	start := time.Now()
	emitDeserializeStart(ctx, c.desc.typeName)

	var zero T
	rv, err := decode(c.desc, p, c.opts)
	emitDeserializeComplete(ctx, c.desc.typeName, "", 0, time.Since(start), err)
	if err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

// Marshal serializes v and encodes the result with w.
func (c *Codec[T]) Marshal(ctx context.Context, w Wire, v T) ([]byte, error) {
	start := time.Now()
	emitSerializeStart(ctx, c.desc.typeName)

	var data []byte
	props, err := encode(c.desc, reflect.ValueOf(&v).Elem())
	if err == nil {
		data, err = w.Marshal(map[string]any(props))
		if err != nil {
			err = fmt.Errorf("marshal %s: %w", w.ContentType(), err)
		}
	}
	emitSerializeComplete(ctx, c.desc.typeName, w.ContentType(), len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Unmarshal decodes data with w and deserializes the resulting map.
func (c *Codec[T]) Unmarshal(ctx context.Context, w Wire, data []byte) (T, error) {
	start := time.Now()
	emitDeserializeStart(ctx, c.desc.typeName)

	var zero T
	var rv reflect.Value
	var m map[string]any
	err := w.Unmarshal(data, &m)
	if err != nil {
		err = fmt.Errorf("unmarshal %s: %w", w.ContentType(), err)
	} else {
		rv, err = decode(c.desc, Properties(m), c.opts)
	}
	emitDeserializeComplete(ctx, c.desc.typeName, w.ContentType(), len(data), time.Since(start), err)
	if err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

// Serialize reads v through d. v may be a value or pointer of d's type, or
// of any struct type exposing d's fields by Go name.
func Serialize(d *Descriptor, v any) (Properties, error) {
	return encode(d, reflect.ValueOf(v))
}

// Deserialize builds a new instance of d's type from p. The result holds a
// value of d.Type(), not a pointer.
func Deserialize(d *Descriptor, p Properties, opts ...Option) (any, error) {
	rv, err := decode(d, p, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

func encode(d *Descriptor, rv reflect.Value) (Properties, error) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		f := d.fields[0]
		return nil, newFieldError(ErrAccessorMissing, f.Name, f.Type)
	}

	sameType := rv.Type() == d.typ
	props := make(Properties, len(d.fields)+1)
	for _, f := range d.fields {
		if sameType {
			props[f.Name] = rv.Field(f.Index).Interface()
			continue
		}
		sf, ok := rv.Type().FieldByName(f.GoName)
		if !ok || !sf.IsExported() {
			return nil, newFieldError(ErrAccessorMissing, f.Name, f.Type)
		}
		fv, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return nil, newFieldError(ErrAccessorMissing, f.Name, f.Type)
		}
		props[f.Name] = fv.Interface()
	}
	props[MarkerKey] = qualifiedName(rv.Type())
	return props, nil
}

func decode(d *Descriptor, p Properties, o options) (reflect.Value, error) {
	args := make([]reflect.Value, len(d.fields))
	for i, f := range d.fields {
		raw, ok := p[f.Name]
		if !ok {
			return reflect.Value{}, newFieldError(ErrFieldMissing, f.Name, f.Type)
		}
		v, err := coerceField(f, raw)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}

	out, err := d.construct(args)
	if err != nil {
		return reflect.Value{}, err
	}

	if err := checkMarker(p, qualifiedName(out.Type()), o.requireMarker); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}

// checkMarker compares the marker, if any, with want case-insensitively.
func checkMarker(p Properties, want string, required bool) error {
	raw, ok := p[MarkerKey]
	if !ok {
		if required {
			return &MismatchError{Want: want}
		}
		return nil
	}
	got, isString := raw.(string)
	if !isString {
		got = fmt.Sprint(raw)
	}
	if !strings.EqualFold(got, want) {
		return &MismatchError{Want: want, Got: got}
	}
	return nil
}
