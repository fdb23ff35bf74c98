package form

import "testing"

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"79991234567", "+7 (999) 123-45-67"},
		{"89991234567", "89991234567"},
		{"+7 (999) 123-45-67", "+7 (999) 123-45-67"},
		{"7999123456789", "+7 (999) 123-45-67"},
		{"7", "+7 () --"},
		{"7999", "+7 (999) --"},
		{"abc", ""},
		{"", ""},
		{"8 (999) 1", "89991"},
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPhone_OutputValidates(t *testing.T) {
	out := FormatPhone("79991234567")
	if msg := ValidateText(Phone, out); msg != "" {
		t.Errorf("formatted phone %q rejected: %s", out, msg)
	}
}
