// form/field.go
// Package form holds the contact form's fields, their validation rules,
// and the phone number formatter. Everything here is pure: no DOM, no I/O.
package form

// Field identifies one input of the contact form.
type Field int

// Fields in declared order. Validation, error focus, and value collection
// all walk this order.
const (
	Name Field = iota
	Email
	Phone
	Message
	Agreement
)

var fieldIDs = [...]string{
	Name:      "name",
	Email:     "email",
	Phone:     "phone",
	Message:   "message",
	Agreement: "agreement",
}

// Fields returns every field in declared order.
func Fields() []Field {
	return []Field{Name, Email, Phone, Message, Agreement}
}

// ID is the element id of the field's input and its form-data key.
func (f Field) ID() string {
	if f < 0 || int(f) >= len(fieldIDs) {
		return "unknown"
	}
	return fieldIDs[f]
}

// ErrorID is the element id of the field's error container.
func (f Field) ErrorID() string {
	return f.ID() + "Error"
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return f.ID()
}

// IsCheckbox reports whether the field's raw value is a checked state
// rather than text.
func (f Field) IsCheckbox() bool {
	return f == Agreement
}

// ParseField maps an element id back to its Field.
func ParseField(id string) (Field, bool) {
	for i, s := range fieldIDs {
		if s == id {
			return Field(i), true
		}
	}
	return 0, false
}
