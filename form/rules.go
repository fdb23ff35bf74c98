package form

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Length limits, counted in UTF-16 code units of the trimmed value, the
// way the browser measures string length.
const (
	NameMinLen    = 2
	MessageMinLen = 10
	MessageMaxLen = 1000
)

// space matches the whitespace class browsers use for \s and String.trim:
// ASCII controls \t\n\v\f\r, every Zs space separator, the line and
// paragraph separators, and the BOM.
const space = `\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nameRe  = regexp.MustCompile(`^[а-яА-Яa-zA-Z` + space + `]+$`)
	emailRe = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9` + space + `\-()]+$`)
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// textLen counts UTF-16 code units: characters outside the BMP count twice.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Value is a field's raw input: Text for text inputs, Checked for the
// checkbox.
type Value struct {
	Text    string
	Checked bool
}

// Text wraps a text input's value.
func Text(s string) Value { return Value{Text: s} }

// Checked wraps a checkbox state.
func Checked(on bool) Value { return Value{Checked: on} }

// Rule maps a raw value to the reason it is rejected, or KindNone.
type Rule func(Value) Kind

// Spec binds a field to its rule.
type Spec struct {
	Field Field
	Rule  Rule
}

// Specs returns a fresh spec table in declared field order.
func Specs() []Spec {
	return []Spec{
		{Field: Name, Rule: checkName},
		{Field: Email, Rule: checkEmail},
		{Field: Phone, Rule: checkPhone},
		{Field: Message, Rule: checkMessage},
		{Field: Agreement, Rule: checkAgreement},
	}
}

// Emptiness and length look at the trimmed value; the charset check runs
// on the value as typed.
func checkName(v Value) Kind {
	t := trim(v.Text)
	switch {
	case t == "":
		return EmptyField
	case textLen(t) < NameMinLen:
		return TooShort
	case !nameRe.MatchString(v.Text):
		return InvalidCharset
	}
	return KindNone
}

func checkEmail(v Value) Kind {
	switch {
	case trim(v.Text) == "":
		return EmptyField
	case !emailRe.MatchString(v.Text):
		return InvalidFormat
	}
	return KindNone
}

// Phone is optional.
func checkPhone(v Value) Kind {
	if trim(v.Text) != "" && !phoneRe.MatchString(v.Text) {
		return InvalidFormat
	}
	return KindNone
}

func checkMessage(v Value) Kind {
	t := trim(v.Text)
	n := textLen(t)
	switch {
	case t == "":
		return EmptyField
	case n < MessageMinLen:
		return TooShort
	case n > MessageMaxLen:
		return TooLong
	}
	return KindNone
}

func checkAgreement(v Value) Kind {
	if !v.Checked {
		return NotAccepted
	}
	return KindNone
}

// Result is the outcome of validating one field. Message is empty iff the
// value is valid.
type Result struct {
	Field   Field
	Kind    Kind
	Message string
}

// Valid reports whether the value passed.
func (r Result) Valid() bool { return r.Message == "" }

// Err returns the result as an *Error, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Field: r.Field, Kind: r.Kind, Message: r.Message}
}

// Validate runs the field's rule over v.
func Validate(f Field, v Value) Result {
	var k Kind
	for _, s := range Specs() {
		if s.Field == f {
			k = s.Rule(v)
			break
		}
	}
	return Result{Field: f, Kind: k, Message: MessageFor(f, k)}
}

// ValidateText validates a text field's value and returns the error
// message, or "" when valid.
func ValidateText(f Field, s string) string {
	return Validate(f, Text(s)).Message
}

// ValidateChecked validates a checkbox field's state and returns the error
// message, or "" when valid.
func ValidateChecked(f Field, on bool) string {
	return Validate(f, Checked(on)).Message
}
