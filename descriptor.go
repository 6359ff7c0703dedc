package record

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/zoobzio/sentinel"
)

// propTag renames or excludes a field: `prop:"name"` or `prop:"-"`.
const propTag = "prop"

func init() {
	sentinel.Tag(propTag)
}

// Field describes one record component.
type Field struct {
	Name   string       // property key
	GoName string       // struct field name
	Type   reflect.Type // declared field type
	Index  int          // struct field index
}

// Descriptor is the immutable shape of a record type: its fields in
// constructor order and its single construction path.
//
// Descriptors are obtained from Resolve or ResolveType and are safe to share
// between goroutines.
type Descriptor struct {
	typ      reflect.Type
	typeName string
	fields   []Field
	byName   map[string]int
	ctor     reflect.Value // zero Value means positional field assignment
	ctorErr  bool          // ctor returns (T, error)
}

// Type returns the record's Go type.
func (d *Descriptor) Type() reflect.Type {
	return d.typ
}

// TypeName returns the fully-qualified type name written to MarkerKey.
func (d *Descriptor) TypeName() string {
	return d.typeName
}

// Len returns the number of record components.
func (d *Descriptor) Len() int {
	return len(d.fields)
}

// Fields returns the record components in constructor order.
func (d *Descriptor) Fields() []Field {
	return slices.Clone(d.fields)
}

// Field looks up a component by property key.
func (d *Descriptor) Field(name string) (Field, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// HasConstructor reports whether a constructor function was registered.
func (d *Descriptor) HasConstructor() bool {
	return d.ctor.IsValid()
}

// construct builds a new instance from coerced values in field order.
func (d *Descriptor) construct(args []reflect.Value) (out reflect.Value, err error) {
	if len(args) != len(d.fields) {
		return reflect.Value{}, newTypeError(ErrConstruction, d.typeName,
			fmt.Errorf("got %d arguments, want %d", len(args), len(d.fields)))
	}

	if !d.ctor.IsValid() {
		rv := reflect.New(d.typ).Elem()
		for i, f := range d.fields {
			rv.Field(f.Index).Set(args[i])
		}
		return rv, nil
	}

	defer func() {
		if r := recover(); r != nil {
			out = reflect.Value{}
			err = newTypeError(ErrConstruction, d.typeName, fmt.Errorf("constructor panicked: %v", r))
		}
	}()

	results := d.ctor.Call(args)
	if d.ctorErr && !results[1].IsNil() {
		return reflect.Value{}, newTypeError(ErrConstruction, d.typeName, results[1].Interface().(error))
	}
	return results[0], nil
}

// qualifiedName returns "<pkgpath>.<Name>", or the bare name for types
// declared outside any package (builtins, unnamed types).
func qualifiedName(rt reflect.Type) string {
	if rt.PkgPath() == "" {
		if rt.Name() == "" {
			return rt.String()
		}
		return rt.Name()
	}
	return rt.PkgPath() + "." + rt.Name()
}

// scanType builds sentinel metadata for a type known only at runtime.
func scanType(rt reflect.Type) sentinel.Metadata {
	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if v, ok := sf.Tag.Lookup(propTag); ok {
			fm.Tags[propTag] = v
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return meta
}

// buildDescriptor turns scanned metadata into a Descriptor for rt.
func buildDescriptor(rt reflect.Type, meta sentinel.Metadata) (*Descriptor, error) {
	name := qualifiedName(rt)
	d := &Descriptor{
		typ:      rt,
		typeName: name,
		byName:   make(map[string]int, len(meta.Fields)),
	}

	for _, fm := range meta.Fields {
		sf, ok := rt.FieldByName(fm.Name)
		if !ok || len(sf.Index) != 1 || !sf.IsExported() {
			continue
		}

		key := sf.Name
		if v, ok := sf.Tag.Lookup(propTag); ok {
			if v == "-" {
				continue
			}
			if v != "" {
				key = v
			}
		}

		if key == MarkerKey {
			return nil, newFieldError(ErrReservedField, key, sf.Type)
		}
		if _, dup := d.byName[key]; dup {
			return nil, newFieldError(ErrDuplicateField, key, sf.Type)
		}

		d.byName[key] = -1
		d.fields = append(d.fields, Field{
			Name:   key,
			GoName: sf.Name,
			Type:   sf.Type,
			Index:  sf.Index[0],
		})
	}

	if len(d.fields) == 0 {
		return nil, newTypeError(ErrMetadataUnavailable, name, fmt.Errorf("no exported fields"))
	}

	// Declaration order is constructor order.
	slices.SortStableFunc(d.fields, func(a, b Field) int {
		return a.Index - b.Index
	})
	for i, f := range d.fields {
		d.byName[f.Name] = i
	}

	if ctor, ok := lookupConstructor(rt); ok {
		if err := bindConstructor(d, ctor); err != nil {
			return nil, err
		}
	}

	return d, nil
}
