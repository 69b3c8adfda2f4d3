package models

import "encoding/json"

// Value is an optional field with three states: unset (the zero value),
// explicitly cleared, and set to a value. The engine treats cleared the same
// as unset, so both are omitted from serialized output; only a set Value is
// emitted. Fields typed Value[T] must carry the `omitzero` JSON option.
type Value[T any] struct {
	val     T
	present bool
}

// Set returns a Value holding v.
func Set[T any](v T) Value[T] {
	return Value[T]{val: v, present: true}
}

// SetNonEmpty returns a Value holding s, or a cleared Value when s is empty.
// This normalization is applied only to the fields documented as using it
// (Dag.Description, Dag.Schedule, Step.Description); for other string fields
// an empty string is a legitimate value.
func SetNonEmpty(s string) Value[string] {
	if s == "" {
		return Value[string]{}
	}
	return Set(s)
}

// Get returns the held value and whether the Value is in the set state.
func (v Value[T]) Get() (T, bool) {
	return v.val, v.present
}

// OrZero returns the held value, or the zero value of T when unset.
func (v Value[T]) OrZero() T {
	return v.val
}

// Clear resets the Value to the cleared state.
func (v *Value[T]) Clear() {
	var zero T
	v.val = zero
	v.present = false
}

// IsZero reports whether the Value is unset or cleared. encoding/json uses
// this to drop the field under the `omitzero` option.
func (v Value[T]) IsZero() bool {
	return !v.present
}

// MarshalJSON encodes the held value.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.val)
}

// UnmarshalJSON decodes into the held value and marks the Value set.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &v.val); err != nil {
		return err
	}
	v.present = true
	return nil
}
