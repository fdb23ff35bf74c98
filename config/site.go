package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// SiteConfig describes what the host serves and how the page behaves.
type SiteConfig struct {
	// Title is the page <title>.
	Title string `validate:"required,max=120"`
	// WasmPath is the compiled bundle (GOOS=js GOARCH=wasm).
	WasmPath string `validate:"required"`
	// WasmExecPath is the Go runtime shim, copied from $(go env GOROOT)/lib/wasm.
	WasmExecPath string `validate:"required"`
	// SubmitDelay is how long the simulated transport takes.
	SubmitDelay time.Duration `validate:"gte=0,lte=1m"`
	// GraceDelay separates showing the success panel from fading it in.
	GraceDelay time.Duration `validate:"gte=0,lte=10s"`
	// AssetMaxAge is the Cache-Control max-age, in seconds, for static assets.
	AssetMaxAge int `validate:"gte=0"`
}

// SiteKeys lists the site settings Load should read.
func SiteKeys() []AppKey {
	return []AppKey{
		{Name: "site_title", Default: "Обратная связь", Desc: "Page title"},
		{Name: "wasm_path", Default: "web/contact.wasm", Desc: "Path to the compiled wasm bundle"},
		{Name: "wasm_exec_path", Default: "web/wasm_exec.js", Desc: "Path to the Go wasm_exec.js shim"},
		{Name: "submit_delay", Default: 2000 * time.Millisecond, Desc: "Simulated submission delay"},
		{Name: "grace_delay", Default: 100 * time.Millisecond, Desc: "Delay before the success panel fades in"},
		{Name: "asset_max_age", Default: 3600, Desc: "Cache-Control max-age for static assets (seconds)"},
	}
}

var validate = validator.New()

// SiteFromValues builds and validates a SiteConfig from loaded values.
// Unset or unparseable durations fall back to the defaults in SiteKeys.
func SiteFromValues(vals AppConfigValues) (SiteConfig, error) {
	cfg := SiteConfig{
		Title:        vals.String("site_title"),
		WasmPath:     vals.String("wasm_path"),
		WasmExecPath: vals.String("wasm_exec_path"),
		SubmitDelay:  vals.Duration("submit_delay", 2000*time.Millisecond),
		GraceDelay:   vals.Duration("grace_delay", 100*time.Millisecond),
		AssetMaxAge:  vals.Int("asset_max_age"),
	}
	if err := validate.Struct(cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("site configuration errors: %w", err)
	}
	return cfg, nil
}
