package form

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_EmptyOrWhitespace(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n", " "} {
		for _, f := range []Field{Name, Email, Message} {
			if got := Validate(f, Text(raw)).Kind; got != EmptyField {
				t.Errorf("Validate(%s, %q).Kind = %v, want %v", f, raw, got, EmptyField)
			}
		}
		if msg := ValidateText(Phone, raw); msg != "" {
			t.Errorf("ValidateText(phone, %q) = %q, want valid", raw, msg)
		}
	}
	if got := Validate(Agreement, Checked(false)).Kind; got != NotAccepted {
		t.Errorf("agreement unchecked: Kind = %v, want %v", got, NotAccepted)
	}
	if msg := ValidateChecked(Agreement, true); msg != "" {
		t.Errorf("agreement checked: got %q, want valid", msg)
	}
}

func TestValidate_Name(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"A", TooShort},
		{" A ", TooShort},
		{"Ann", KindNone},
		{"Анна", KindNone},
		{"Анна Мария", KindNone},
		{"  Ann  ", KindNone},
		{"Ann1", InvalidCharset},
		{"O'Neil", InvalidCharset},
		{"Ann-Marie", InvalidCharset},
		// ё sits outside а-я.
		{"Алёна", InvalidCharset},
		// One astral character is two UTF-16 units: long enough, wrong charset.
		{"😀", InvalidCharset},
	}
	for _, tt := range tests {
		if got := Validate(Name, Text(tt.in)).Kind; got != tt.want {
			t.Errorf("Validate(name, %q).Kind = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"not-an-email", InvalidFormat},
		{"a@b.co", KindNone},
		{"user.name@mail.example.ru", KindNone},
		{"a@b", InvalidFormat},
		{"a@@b.co", InvalidFormat},
		{"a b@c.de", InvalidFormat},
		{" a@b.co", InvalidFormat},
		{"a@b.", InvalidFormat},
		{"@b.co", InvalidFormat},
	}
	for _, tt := range tests {
		if got := Validate(Email, Text(tt.in)).Kind; got != tt.want {
			t.Errorf("Validate(email, %q).Kind = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"", KindNone},
		{"abc-123", InvalidFormat},
		{"+7 (999) 123-45-67", KindNone},
		{"89991234567", KindNone},
		{"+", InvalidFormat},
		{"1+2", InvalidFormat},
		{"123#", InvalidFormat},
	}
	for _, tt := range tests {
		if got := Validate(Phone, Text(tt.in)).Kind; got != tt.want {
			t.Errorf("Validate(phone, %q).Kind = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_MessageLength(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Kind
	}{
		{"nine", strings.Repeat("a", 9), TooShort},
		{"ten", strings.Repeat("a", 10), KindNone},
		{"ten cyrillic", strings.Repeat("я", 10), KindNone},
		{"thousand", strings.Repeat("a", 1000), KindNone},
		{"thousand and one", strings.Repeat("a", 1001), TooLong},
		{"padded nine", "   " + strings.Repeat("a", 9) + "   ", TooShort},
		// Astral characters count as two UTF-16 units each.
		{"five emoji", strings.Repeat("😀", 5), KindNone},
		{"four emoji and a letter", strings.Repeat("😀", 4) + "a", TooShort},
		{"five hundred emoji", strings.Repeat("😀", 500), KindNone},
		{"six hundred emoji", strings.Repeat("😀", 600), TooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(Message, Text(tt.in)).Kind; got != tt.want {
				t.Errorf("Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_MessagesMatchKinds(t *testing.T) {
	r := Validate(Name, Text("A"))
	if r.Valid() {
		t.Fatal("expected invalid result")
	}
	if r.Message != "Имя должно содержать минимум 2 символа" {
		t.Errorf("Message = %q", r.Message)
	}

	var fe *Error
	if err := r.Err(); !errors.As(err, &fe) {
		t.Fatalf("Err() = %v, want *Error", err)
	}
	if fe.Field != Name || fe.Kind != TooShort {
		t.Errorf("Error = %+v", fe)
	}

	if err := Validate(Name, Text("Ann")).Err(); err != nil {
		t.Errorf("valid result Err() = %v, want nil", err)
	}
}

func TestSpecs_DeclaredOrder(t *testing.T) {
	specs := Specs()
	fields := Fields()
	if len(specs) != len(fields) {
		t.Fatalf("len(Specs()) = %d, want %d", len(specs), len(fields))
	}
	for i, s := range specs {
		if s.Field != fields[i] {
			t.Errorf("Specs()[%d].Field = %s, want %s", i, s.Field, fields[i])
		}
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, ok := ParseField(f.ID())
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.ID(), got, ok)
		}
	}
	if _, ok := ParseField("surname"); ok {
		t.Error("ParseField(surname) should fail")
	}
	if Phone.ErrorID() != "phoneError" {
		t.Errorf("Phone.ErrorID() = %q", Phone.ErrorID())
	}
}
