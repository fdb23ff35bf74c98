//go:build js && wasm

package webui

import (
	"context"
	"syscall/js"

	"github.com/dalemusser/contactform/form"
	"github.com/dalemusser/contactform/nav"
	"github.com/dalemusser/contactform/page"
	"github.com/dalemusser/contactform/submit"
	"go.uber.org/zap"
)

// Binding holds the registered event listeners.
type Binding struct {
	listeners []listener
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Release detaches every listener and frees its callback. Events fired
// afterwards no longer reach the controller or the toggle.
func (b *Binding) Release() {
	for _, l := range b.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	b.listeners = nil
}

func (b *Binding) on(target js.Value, event string, handler func(args []js.Value)) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		handler(args)
		return nil
	})
	b.listeners = append(b.listeners, listener{target: target, event: event, fn: fn})
	target.Call("addEventListener", event, fn)
}

// UntilUnload blocks until the page is unloaded for good. A pagehide that
// keeps the page in the back/forward cache does not count.
func UntilUnload() {
	unloaded := make(chan struct{})
	var b Binding
	b.on(js.Global(), "pagehide", func(args []js.Value) {
		if len(args) > 0 && args[0].Get("persisted").Truthy() {
			return
		}
		select {
		case <-unloaded:
		default:
			close(unloaded)
		}
	})
	<-unloaded
	b.Release()
}

// Bind wires form and menu events to c and t.
func Bind(ctx context.Context, d *DOM, c *submit.Controller, t *nav.Toggle, logger *zap.Logger) *Binding {
	b := &Binding{}

	for _, f := range form.Fields() {
		input := d.fields[f]
		b.on(input, "blur", func([]js.Value) { c.OnBlur(f) })
		edit := "input"
		if f.IsCheckbox() {
			edit = "change"
		}
		b.on(input, edit, func([]js.Value) { c.OnEdit(f) })
	}
	b.on(d.fields[form.Phone], "input", func([]js.Value) { c.OnPhoneInput() })

	// The handler must not block the event loop, so the settle channel is
	// drained on its own goroutine.
	b.on(d.elements[page.Form], "submit", func(args []js.Value) {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		done := c.OnSubmitAttempt(ctx)
		go func() {
			logger.Debug("submit attempt settled", zap.Stringer("state", <-done))
		}()
	})

	if h, ok := d.menu[nav.Hamburger]; ok {
		b.on(h, "click", func([]js.Value) { t.OnHamburgerClick() })
	}
	links := d.doc.Call("querySelectorAll", MenuLinkSelector)
	for i := 0; i < links.Length(); i++ {
		b.on(links.Index(i), "click", func([]js.Value) { t.OnLinkClick() })
	}

	return b
}
