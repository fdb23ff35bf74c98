package nav

import "testing"

type classes map[Element]bool

func (c classes) ToggleActive(e Element)       { c[e] = !c[e] }
func (c classes) SetActive(e Element, on bool) { c[e] = on }

func TestToggle(t *testing.T) {
	c := classes{}
	tg := New(c)

	tg.OnHamburgerClick()
	if !c[Hamburger] || !c[Menu] {
		t.Fatalf("after first click: %v, want both active", c)
	}
	tg.OnHamburgerClick()
	if c[Hamburger] || c[Menu] {
		t.Fatalf("after second click: %v, want both inactive", c)
	}

	tg.OnHamburgerClick()
	tg.OnLinkClick()
	if c[Hamburger] || c[Menu] {
		t.Errorf("after link click: %v, want both inactive", c)
	}

	// Link clicks on a closed menu leave it closed.
	tg.OnLinkClick()
	if c[Hamburger] || c[Menu] {
		t.Errorf("link click on closed menu: %v", c)
	}
}
