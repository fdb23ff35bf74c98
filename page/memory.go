package page

import (
	"sync"

	"github.com/dalemusser/contactform/form"
)

// Memory is an in-memory Page. It starts in the state the page markup
// loads in: form and label shown, loader and success panel hidden, the
// success panel fully transparent.
type Memory struct {
	mu       sync.RWMutex
	values   map[form.Field]string
	checked  map[form.Field]bool
	errText  map[form.Field]string
	errFlag  map[form.Field]bool
	disabled map[Element]bool
	visible  map[Element]bool
	opacity  map[Element]float64
	focused  form.Field
	hasFocus bool
	notices  []string
}

// NewMemory returns a Memory page in its initial load state.
func NewMemory() *Memory {
	return &Memory{
		values:   make(map[form.Field]string),
		checked:  make(map[form.Field]bool),
		errText:  make(map[form.Field]string),
		errFlag:  make(map[form.Field]bool),
		disabled: make(map[Element]bool),
		visible: map[Element]bool{
			Form:         true,
			SubmitButton: true,
			SubmitLabel:  true,
			SubmitLoader: false,
			SuccessPanel: false,
		},
		opacity: map[Element]float64{
			Form:         1,
			SubmitButton: 1,
			SubmitLabel:  1,
			SubmitLoader: 1,
			SuccessPanel: 0,
		},
	}
}

func (m *Memory) Value(f form.Field) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[f]
}

func (m *Memory) Checked(f form.Field) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checked[f]
}

func (m *Memory) SetValue(f form.Field, v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[f] = v
}

// SetChecked sets a checkbox field, as a user click would.
func (m *Memory) SetChecked(f form.Field, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checked[f] = on
}

func (m *Memory) ErrorText(f form.Field) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errText[f]
}

func (m *Memory) SetErrorText(f form.Field, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errText[f] = msg
}

func (m *Memory) SetErrorFlag(f form.Field, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errFlag[f] = on
}

// ErrorFlag reports whether the field is marked as erroneous.
func (m *Memory) ErrorFlag(f form.Field) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errFlag[f]
}

func (m *Memory) Focus(f form.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focused = f
	m.hasFocus = true
}

// Focused returns the field that last received focus.
func (m *Memory) Focused() (form.Field, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused, m.hasFocus
}

func (m *Memory) SetDisabled(e Element, disabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled[e] = disabled
}

// Disabled reports whether e is disabled.
func (m *Memory) Disabled(e Element) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disabled[e]
}

func (m *Memory) SetVisible(e Element, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible[e] = visible
}

// Visible reports whether e is displayed.
func (m *Memory) Visible(e Element) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visible[e]
}

func (m *Memory) SetOpacity(e Element, opacity float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity[e] = opacity
}

// Opacity returns e's current opacity.
func (m *Memory) Opacity(e Element) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opacity[e]
}

func (m *Memory) Notify(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, msg)
}

// Notices returns every notice shown so far.
func (m *Memory) Notices() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.notices...)
}

var _ Page = (*Memory)(nil)
