// Package nav implements the collapsible navigation menu.
package nav

// Element names one of the two elements the toggle drives.
type Element int

const (
	Hamburger Element = iota
	Menu
)

// ClassTarget toggles the "active" class on the menu elements.
type ClassTarget interface {
	ToggleActive(e Element)
	SetActive(e Element, on bool)
}

// Toggle opens and closes the menu.
type Toggle struct {
	target ClassTarget
}

// New returns a Toggle driving t.
func New(t ClassTarget) *Toggle {
	return &Toggle{target: t}
}

// OnHamburgerClick flips the button and the menu independently, the way
// classList.toggle does on each.
func (t *Toggle) OnHamburgerClick() {
	t.target.ToggleActive(Hamburger)
	t.target.ToggleActive(Menu)
}

// OnLinkClick closes the menu after a link in it is followed.
func (t *Toggle) OnLinkClick() {
	t.target.SetActive(Hamburger, false)
	t.target.SetActive(Menu, false)
}
