package form

// CheckedValue is what a checked checkbox contributes to form data.
const CheckedValue = "on"

// Values is collected form data keyed by field id. Text fields are always
// present, even when empty; the checkbox is present only when checked.
type Values map[string]string

// Get returns the value stored for f.
func (v Values) Get(f Field) string {
	return v[f.ID()]
}

// Has reports whether f contributed a value.
func (v Values) Has(f Field) bool {
	_, ok := v[f.ID()]
	return ok
}
