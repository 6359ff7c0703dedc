package record

// MarkerKey is the reserved property key holding the fully-qualified type
// name of a serialized record. No record field may map to it.
const MarkerKey = "__CLASS__"

// Properties is the flat field-name to value mapping exchanged with stores.
// Values are primitives, boxed primitives, or slices thereof, plus the
// MarkerKey entry.
type Properties map[string]any

// TypeName returns the marker value, if present and a string.
func (p Properties) TypeName() (string, bool) {
	v, ok := p[MarkerKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy. Values are shared, keys are not.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Fields returns a shallow copy without the marker entry.
func (p Properties) Fields() Properties {
	out := p.Clone()
	delete(out, MarkerKey)
	return out
}
