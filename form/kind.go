package form

import "fmt"

// Kind classifies why a field value was rejected. KindNone means valid.
type Kind int

const (
	KindNone Kind = iota
	EmptyField
	TooShort
	TooLong
	InvalidCharset
	InvalidFormat
	NotAccepted
)

var kindCodes = [...]string{
	KindNone:       "",
	EmptyField:     "empty_field",
	TooShort:       "too_short",
	TooLong:        "too_long",
	InvalidCharset: "invalid_charset",
	InvalidFormat:  "invalid_format",
	NotAccepted:    "not_accepted",
}

// Code returns a stable machine-readable code, e.g. "too_short".
func (k Kind) Code() string {
	if k < 0 || int(k) >= len(kindCodes) {
		return "unknown"
	}
	return kindCodes[k]
}

func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	return k.Code()
}

// Error is a rejected field value. Validation never returns it on its own;
// it exists for callers that want to carry a Result through an error chain.
type Error struct {
	Field   Field
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind.Code(), e.Message)
}
