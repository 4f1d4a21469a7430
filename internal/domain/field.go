package domain

import "encoding/json"

// OptString is a tri-state string field for partial updates. It
// distinguishes "not supplied" (zero value), "supplied as null" (clear the
// stored value) and "supplied as value" (overwrite the stored value), so an
// omitted field in an update payload never clobbers what is already stored.
type OptString struct {
	Set   bool
	Null  bool
	Value string
}

// String returns an OptString carrying the given value.
func String(v string) OptString {
	return OptString{Set: true, Value: v}
}

// Null returns an OptString that explicitly clears the field.
func Null() OptString {
	return OptString{Set: true, Null: true}
}

// Or returns the value this field resolves to against an existing stored
// value: the new value when supplied, empty when supplied as null, and the
// existing value when not supplied at all.
func (o OptString) Or(existing string) string {
	if !o.Set {
		return existing
	}
	if o.Null {
		return ""
	}
	return o.Value
}

// UnmarshalJSON implements json.Unmarshaler. A key that is present in the
// payload marks the field as set even when its value is null.
func (o *OptString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// MarshalJSON implements json.Marshaler.
func (o OptString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
