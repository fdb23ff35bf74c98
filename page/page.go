// page/page.go
// Package page describes the DOM surface the contact form logic drives.
//
// The form logic never touches a browser directly. It reads values and
// writes presentation state through Page; webui implements Page over
// syscall/js and Memory implements it for tests.
package page

import "github.com/dalemusser/contactform/form"

// Element names a non-field element of the contact page.
type Element int

const (
	// Form is the <form> element itself.
	Form Element = iota
	// SubmitButton is the submit control.
	SubmitButton
	// SubmitLabel is the button's idle label.
	SubmitLabel
	// SubmitLoader is the button's loading indicator.
	SubmitLoader
	// SuccessPanel is revealed after a successful submission.
	SuccessPanel
)

func (e Element) String() string {
	switch e {
	case Form:
		return "form"
	case SubmitButton:
		return "submit_button"
	case SubmitLabel:
		return "submit_label"
	case SubmitLoader:
		return "submit_loader"
	case SuccessPanel:
		return "success_panel"
	}
	return "unknown"
}

// Page is the DOM capability consumed by the submission controller.
// Implementations must be safe to call from the goroutine that awaits a
// submission as well as from event handlers.
type Page interface {
	// Value returns a text field's current value.
	Value(f form.Field) string
	// Checked returns a checkbox field's current state.
	Checked(f form.Field) bool
	// SetValue replaces a text field's value.
	SetValue(f form.Field, v string)

	// ErrorText returns what the field's error container currently shows.
	ErrorText(f form.Field) string
	SetErrorText(f form.Field, msg string)
	// SetErrorFlag toggles the field's "error" presentation.
	SetErrorFlag(f form.Field, on bool)
	Focus(f form.Field)

	SetDisabled(e Element, disabled bool)
	SetVisible(e Element, visible bool)
	SetOpacity(e Element, opacity float64)

	// Notify shows a blocking, alert-style notice.
	Notify(msg string)
}
