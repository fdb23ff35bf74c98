//go:build js && wasm

// Command contactwasm is the browser bundle for the contact page. Build
// with GOOS=js GOARCH=wasm; the site host serves it as /contact.wasm.
package main

import (
	"context"
	"strconv"
	"syscall/js"
	"time"

	"github.com/dalemusser/contactform/logging/zaplog"
	"github.com/dalemusser/contactform/nav"
	"github.com/dalemusser/contactform/submit"
	"github.com/dalemusser/contactform/webui"
	"go.uber.org/zap"
)

func main() {
	logger := zaplog.MustBuildLogger("info", "dev")
	defer logger.Sync()

	dom, err := webui.Attach(js.Global().Get("document"))
	if err != nil {
		logger.Error("contact form not attached", zap.Error(err))
		return
	}

	transport := submit.NewSimulated(logger)
	transport.Delay = millis(dom.Data("submitDelay"), submit.DefaultDelay)

	ctrl := submit.New(dom,
		submit.WithSubmitter(transport),
		submit.WithGraceDelay(millis(dom.Data("graceDelay"), submit.DefaultGraceDelay)),
		submit.WithLogger(logger),
	)
	binding := webui.Bind(context.Background(), dom, ctrl, nav.New(dom), logger)
	logger.Info("contact form ready",
		zap.Duration("submit_delay", transport.Delay))

	// Callbacks run on this program; main must outlive the page.
	webui.UntilUnload()
	binding.Release()
	logger.Info("contact form released")
}

// millis parses a data-* millisecond count, falling back to def.
func millis(s string, def time.Duration) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return time.Duration(n) * time.Millisecond
}
