// middleware/compress.go
package middleware

import (
	"net/http"

	"github.com/dalemusser/contactform/config"
	"github.com/go-chi/chi/v5/middleware"
)

// compressibleTypes are the content types the host serves that benefit from
// gzip. The wasm bundle is large and compresses well.
var compressibleTypes = []string{
	"text/html",
	"text/css",
	"text/javascript",
	"application/javascript",
	"application/json",
	"application/wasm",
}

// CompressFromConfig returns chi's compressor at coreCfg.CompressionLevel, or
// an identity middleware when compression is disabled. The level has already
// been range-checked by config.Load.
func CompressFromConfig(coreCfg *config.CoreConfig) func(next http.Handler) http.Handler {
	if coreCfg == nil || !coreCfg.EnableCompression {
		return func(next http.Handler) http.Handler { return next }
	}
	return Compress(coreCfg.CompressionLevel)
}

// Compress clamps level to 1..9.
func Compress(level int) func(next http.Handler) http.Handler {
	level = min(max(level, 1), 9)
	return middleware.Compress(level, compressibleTypes...)
}
