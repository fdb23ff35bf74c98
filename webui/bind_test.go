//go:build js && wasm

package webui

import (
	"syscall/js"
	"testing"
)

func TestBinding_ReleaseDetachesListeners(t *testing.T) {
	target := js.Global().Get("EventTarget").New()
	calls := 0

	var b Binding
	b.on(target, "ping", func([]js.Value) { calls++ })

	target.Call("dispatchEvent", js.Global().Get("Event").New("ping"))
	if calls != 1 {
		t.Fatalf("calls before Release = %d, want 1", calls)
	}

	b.Release()
	if len(b.listeners) != 0 {
		t.Fatalf("listeners after Release = %d, want 0", len(b.listeners))
	}
	target.Call("dispatchEvent", js.Global().Get("Event").New("ping"))
	if calls != 1 {
		t.Fatalf("calls after Release = %d, want 1", calls)
	}
}

func TestBinding_ReleaseTwice(t *testing.T) {
	var b Binding
	b.on(js.Global().Get("EventTarget").New(), "ping", func([]js.Value) {})
	b.Release()
	b.Release()
}
