package record

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	constructors   = make(map[reflect.Type]reflect.Value)
	constructorsMu sync.RWMutex
)

var errorType = reflect.TypeFor[error]()

// RegisterConstructor designates fn as the only way to build a T during
// deserialization. fn must have the shape
//
//	func(f1 F1, ..., fn Fn) T
//	func(f1 F1, ..., fn Fn) (T, error)
//
// where F1..Fn are T's record components in declaration order. Without a
// registered constructor, records are built by assigning fields positionally.
//
// Registering a second constructor for the same type fails with
// ErrAmbiguousConstructor. The parameter list is checked against T's fields
// here and again whenever the descriptor is rebuilt.
func RegisterConstructor[T any](fn any) error {
	rt := reflect.TypeFor[T]()
	name := qualifiedName(rt)

	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return newTypeError(ErrInvalidConstructor, name, fmt.Errorf("%T is not a function", fn))
	}
	if _, err := constructorReturns(rt, fv.Type()); err != nil {
		return newTypeError(ErrInvalidConstructor, name, err)
	}

	constructorsMu.Lock()
	if _, exists := constructors[rt]; exists {
		constructorsMu.Unlock()
		return newTypeError(ErrAmbiguousConstructor, name, nil)
	}
	constructors[rt] = fv
	constructorsMu.Unlock()

	forget(rt)

	// Surface parameter mismatches at registration rather than first use.
	if _, err := ResolveType(rt); err != nil {
		constructorsMu.Lock()
		delete(constructors, rt)
		constructorsMu.Unlock()
		return err
	}
	return nil
}

// lookupConstructor returns the registered constructor for rt, if any.
func lookupConstructor(rt reflect.Type) (reflect.Value, bool) {
	constructorsMu.RLock()
	defer constructorsMu.RUnlock()
	fv, ok := constructors[rt]
	return fv, ok
}

// constructorReturns checks the result list and reports whether the
// constructor also returns an error.
func constructorReturns(rt, ft reflect.Type) (bool, error) {
	if ft.IsVariadic() {
		return false, fmt.Errorf("variadic constructors are not supported")
	}
	switch ft.NumOut() {
	case 1:
		if ft.Out(0) != rt {
			return false, fmt.Errorf("returns %s, want %s", ft.Out(0), rt)
		}
		return false, nil
	case 2:
		if ft.Out(0) != rt || ft.Out(1) != errorType {
			return false, fmt.Errorf("returns (%s, %s), want (%s, error)", ft.Out(0), ft.Out(1), rt)
		}
		return true, nil
	default:
		return false, fmt.Errorf("returns %d values, want %s or (%s, error)", ft.NumOut(), rt, rt)
	}
}

// bindConstructor attaches ctor to d after checking its parameters line up
// with d's fields.
func bindConstructor(d *Descriptor, ctor reflect.Value) error {
	ft := ctor.Type()
	withErr, err := constructorReturns(d.typ, ft)
	if err != nil {
		return newTypeError(ErrInvalidConstructor, d.typeName, err)
	}
	if ft.NumIn() != len(d.fields) {
		return newTypeError(ErrInvalidConstructor, d.typeName,
			fmt.Errorf("takes %d parameters, type has %d fields", ft.NumIn(), len(d.fields)))
	}
	for i, f := range d.fields {
		if !f.Type.AssignableTo(ft.In(i)) {
			return newTypeError(ErrInvalidConstructor, d.typeName,
				fmt.Errorf("parameter %d is %s, field %s is %s", i, ft.In(i), f.Name, f.Type))
		}
	}

	d.ctor = ctor
	d.ctorErr = withErr
	return nil
}
