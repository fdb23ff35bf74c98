//go:build js && wasm

// Package webui connects the contact form and menu logic to a live
// document through syscall/js.
package webui

import (
	"fmt"
	"strconv"
	"sync"
	"syscall/js"

	"github.com/dalemusser/contactform/form"
	"github.com/dalemusser/contactform/nav"
	"github.com/dalemusser/contactform/page"
)

// Markup hooks. They match site/assets/index.html.tmpl.
const (
	FormID         = "contactForm"
	SuccessID      = "successMessage"
	SubmitSelector = ".submit-btn"
	LabelSelector  = ".btn-text"
	LoaderSelector = ".btn-loader"

	HamburgerSelector = ".menu-hamburger"
	MenuSelector      = ".menu-list"
	MenuLinkSelector  = ".menu-list a"

	errorClass  = "error"
	activeClass = "active"
)

// display is the CSS display value each element uses when shown.
var display = map[page.Element]string{
	page.Form:         "",
	page.SubmitButton: "",
	page.SubmitLabel:  "inline",
	page.SubmitLoader: "inline",
	page.SuccessPanel: "block",
}

// DOM is a page.Page and nav.ClassTarget backed by the browser document.
// The Go wasm runtime runs every goroutine on the page's single thread;
// the mutex only keeps accesses from interleaving across awaits.
type DOM struct {
	mu       sync.Mutex
	doc      js.Value
	fields   map[form.Field]js.Value
	errors   map[form.Field]js.Value
	elements map[page.Element]js.Value
	menu     map[nav.Element]js.Value
}

// Attach looks up every element the form needs. Menu elements are
// optional; a page without a menu gets a no-op toggle.
func Attach(doc js.Value) (*DOM, error) {
	d := &DOM{
		doc:      doc,
		fields:   make(map[form.Field]js.Value),
		errors:   make(map[form.Field]js.Value),
		elements: make(map[page.Element]js.Value),
		menu:     make(map[nav.Element]js.Value),
	}

	formEl := doc.Call("getElementById", FormID)
	if !present(formEl) {
		return nil, fmt.Errorf("webui: #%s not found", FormID)
	}
	d.elements[page.Form] = formEl

	lookups := []struct {
		el   page.Element
		node js.Value
		desc string
	}{
		{page.SuccessPanel, doc.Call("getElementById", SuccessID), "#" + SuccessID},
		{page.SubmitButton, formEl.Call("querySelector", SubmitSelector), SubmitSelector},
	}
	for _, l := range lookups {
		if !present(l.node) {
			return nil, fmt.Errorf("webui: %s not found", l.desc)
		}
		d.elements[l.el] = l.node
	}

	btn := d.elements[page.SubmitButton]
	for el, sel := range map[page.Element]string{page.SubmitLabel: LabelSelector, page.SubmitLoader: LoaderSelector} {
		node := btn.Call("querySelector", sel)
		if !present(node) {
			return nil, fmt.Errorf("webui: %s not found", sel)
		}
		d.elements[el] = node
	}

	for _, f := range form.Fields() {
		input := doc.Call("getElementById", f.ID())
		errEl := doc.Call("getElementById", f.ErrorID())
		if !present(input) || !present(errEl) {
			return nil, fmt.Errorf("webui: field %q or its error container not found", f.ID())
		}
		d.fields[f] = input
		d.errors[f] = errEl
	}

	if h := doc.Call("querySelector", HamburgerSelector); present(h) {
		d.menu[nav.Hamburger] = h
	}
	if m := doc.Call("querySelector", MenuSelector); present(m) {
		d.menu[nav.Menu] = m
	}
	return d, nil
}

// Data returns the form's data-* attribute under its dataset key
// (e.g. "submitDelay" for data-submit-delay), or "" when absent.
func (d *DOM) Data(key string) string {
	v := d.elements[page.Form].Get("dataset").Get(key)
	if !present(v) {
		return ""
	}
	return v.String()
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func (d *DOM) Value(f form.Field) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[f].Get("value").String()
}

func (d *DOM) Checked(f form.Field) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[f].Get("checked").Bool()
}

func (d *DOM) SetValue(f form.Field, v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[f].Set("value", v)
}

func (d *DOM) ErrorText(f form.Field) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errors[f].Get("textContent").String()
}

func (d *DOM) SetErrorText(f form.Field, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors[f].Set("textContent", msg)
}

func (d *DOM) SetErrorFlag(f form.Field, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	setClass(d.fields[f], errorClass, on)
}

func (d *DOM) Focus(f form.Field) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[f].Call("focus")
}

func (d *DOM) SetDisabled(e page.Element, disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[e].Set("disabled", disabled)
}

func (d *DOM) SetVisible(e page.Element, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := "none"
	if visible {
		v = display[e]
	}
	d.elements[e].Get("style").Set("display", v)
}

func (d *DOM) SetOpacity(e page.Element, opacity float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[e].Get("style").Set("opacity", strconv.FormatFloat(opacity, 'f', -1, 64))
}

func (d *DOM) Notify(msg string) {
	js.Global().Call("alert", msg)
}

func (d *DOM) ToggleActive(e nav.Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.menu[e]; ok {
		el.Get("classList").Call("toggle", activeClass)
	}
}

func (d *DOM) SetActive(e nav.Element, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.menu[e]; ok {
		setClass(el, activeClass, on)
	}
}

func setClass(el js.Value, class string, on bool) {
	if on {
		el.Get("classList").Call("add", class)
		return
	}
	el.Get("classList").Call("remove", class)
}

var (
	_ page.Page       = (*DOM)(nil)
	_ nav.ClassTarget = (*DOM)(nil)
)
