// middleware/security.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/contactform/config"
)

// SecurityHeadersOptions configures the security headers middleware.
// An empty string (or zero HSTSMaxAge) disables the corresponding header.
type SecurityHeadersOptions struct {
	XFrameOptions       string // default "SAMEORIGIN"
	XContentTypeOptions string // default "nosniff"
	ReferrerPolicy      string // default "strict-origin-when-cross-origin"

	// HSTS is only sent on TLS requests.
	HSTSMaxAge            int // seconds; default one year
	HSTSIncludeSubDomains bool
	HSTSPreload           bool

	// ContentSecurityPolicy must allow 'wasm-unsafe-eval' for the form
	// bundle to instantiate; see config.DefaultCSP.
	ContentSecurityPolicy string
	PermissionsPolicy     string
}

// DefaultSecurityHeadersOptions returns the headers the contact page is
// served with.
func DefaultSecurityHeadersOptions() SecurityHeadersOptions {
	return SecurityHeadersOptions{
		XFrameOptions:         "SAMEORIGIN",
		XContentTypeOptions:   "nosniff",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		HSTSMaxAge:            31536000,
		HSTSIncludeSubDomains: true,
		ContentSecurityPolicy: config.DefaultCSP,
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
	}
}

// SecurityHeaders returns middleware that sets the configured headers.
func SecurityHeaders(opts SecurityHeadersOptions) func(next http.Handler) http.Handler {
	var hsts string
	if opts.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(opts.HSTSMaxAge)
		if opts.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
		if opts.HSTSPreload {
			hsts += "; preload"
		}
	}
	static := [][2]string{
		{"X-Frame-Options", opts.XFrameOptions},
		{"X-Content-Type-Options", opts.XContentTypeOptions},
		{"Referrer-Policy", opts.ReferrerPolicy},
		{"Content-Security-Policy", opts.ContentSecurityPolicy},
		{"Permissions-Policy", opts.PermissionsPolicy},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range static {
				if kv[1] != "" {
					h.Set(kv[0], kv[1])
				}
			}
			if hsts != "" && r.TLS != nil {
				h.Set("Strict-Transport-Security", hsts)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersFromConfig returns the default headers with the CSP taken
// from coreCfg. A nil config yields the plain defaults.
func SecurityHeadersFromConfig(coreCfg *config.CoreConfig) func(next http.Handler) http.Handler {
	opts := DefaultSecurityHeadersOptions()
	if coreCfg != nil {
		opts.ContentSecurityPolicy = coreCfg.ContentSecurityPolicy
	}
	return SecurityHeaders(opts)
}

// SecureDefaults is SecurityHeaders(DefaultSecurityHeadersOptions()).
func SecureDefaults() func(next http.Handler) http.Handler {
	return SecurityHeaders(DefaultSecurityHeadersOptions())
}
