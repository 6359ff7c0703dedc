package record

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrAmbiguousConstructor indicates a type has more than one construction path.
	ErrAmbiguousConstructor = errors.New("ambiguous constructor")

	// ErrInvalidConstructor indicates a registered constructor does not accept
	// the record's fields positionally or does not return the record type.
	ErrInvalidConstructor = errors.New("invalid constructor")

	// ErrMetadataUnavailable indicates field metadata could not be extracted from a type.
	ErrMetadataUnavailable = errors.New("type metadata unavailable")

	// ErrReservedField indicates a field maps to the reserved marker key.
	ErrReservedField = errors.New("reserved field name")

	// ErrDuplicateField indicates two fields map to the same property key.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrAccessorMissing indicates an instance has no accessor for a declared field.
	ErrAccessorMissing = errors.New("accessor missing")

	// ErrFieldMissing indicates a required field is absent from a property map.
	ErrFieldMissing = errors.New("field missing")

	// ErrCoercion indicates a stored value could not be converted to the field type.
	ErrCoercion = errors.New("coercion failed")

	// ErrTypeMismatch indicates the marker names a different type than the target.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrConstruction indicates the constructor failed to produce an instance.
	ErrConstruction = errors.New("construction failed")
)

// TypeError represents a failure tied to a record type as a whole.
type TypeError struct {
	Err   error  // Underlying sentinel error
	Type  string // Fully-qualified type name
	Cause error  // Original error, if any
}

func (e *TypeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for type %s: %v", e.Err.Error(), e.Type, e.Cause)
	}
	return fmt.Sprintf("%s for type %s", e.Err.Error(), e.Type)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// FieldError represents a failure tied to a single declared field.
type FieldError struct {
	Err       error  // Underlying sentinel error
	Field     string // Property key of the field
	FieldType string // Declared Go type of the field
}

func (e *FieldError) Error() string {
	if e.FieldType != "" {
		return fmt.Sprintf("%s: field %s (%s)", e.Err.Error(), e.Field, e.FieldType)
	}
	return fmt.Sprintf("%s: field %s", e.Err.Error(), e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CoercionError reports a stored value that could not become the declared field type.
type CoercionError struct {
	Field     string // Property key of the field
	FieldType string // Declared Go type of the field
	Value     any    // Stored value that failed to convert
	Cause     error  // Parser error, if any
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: field %s (%s) from %T %v: %v", ErrCoercion.Error(), e.Field, e.FieldType, e.Value, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: field %s (%s) from %T %v", ErrCoercion.Error(), e.Field, e.FieldType, e.Value, e.Value)
}

func (e *CoercionError) Unwrap() error {
	return ErrCoercion
}

// MismatchError reports a marker naming a different type than the target.
type MismatchError struct {
	Want string // Target type name
	Got  string // Marker value found in the property map, empty when absent
}

func (e *MismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("%s: marker %s absent, want %s", ErrTypeMismatch.Error(), MarkerKey, e.Want)
	}
	return fmt.Sprintf("%s: marker %q, want %q", ErrTypeMismatch.Error(), e.Got, e.Want)
}

func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// newTypeError creates a TypeError for resolver and construction failures.
func newTypeError(sentinel error, typeName string, cause error) error {
	return &TypeError{
		Err:   sentinel,
		Type:  typeName,
		Cause: cause,
	}
}

// newFieldError creates a FieldError for a declared field.
func newFieldError(sentinel error, field string, typ reflect.Type) error {
	fe := &FieldError{
		Err:   sentinel,
		Field: field,
	}
	if typ != nil {
		fe.FieldType = typ.String()
	}
	return fe
}

// newCoercionError creates a CoercionError for a failed conversion.
func newCoercionError(f Field, value any, cause error) error {
	return &CoercionError{
		Field:     f.Name,
		FieldType: f.Type.String(),
		Value:     value,
		Cause:     cause,
	}
}
