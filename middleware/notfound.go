// middleware/notfound.go
package middleware

import (
	"net/http"

	"github.com/dalemusser/contactform/httputil"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Error codes in the JSON body of router fallbacks.
const (
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
)

// NotFoundHandler answers paths the host does not serve. The host only has
// the contact page, its assets and the probe endpoints, so these are
// logged at debug: they are almost always scanners.
func NotFoundHandler(logger *zap.Logger) http.HandlerFunc {
	return fallback(logger, http.StatusNotFound, CodeNotFound, "no such page or asset")
}

// MethodNotAllowedHandler answers non-GET requests to known routes. A POST
// to / lands here when the browser bundle failed to load and the form
// submitted natively, so it is logged at info.
func MethodNotAllowedHandler(logger *zap.Logger) http.HandlerFunc {
	return fallback(logger, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "this host accepts no form data")
}

func fallback(logger *zap.Logger, status int, code, message string) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	level := zap.DebugLevel
	if status == http.StatusMethodNotAllowed {
		level = zap.InfoLevel
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if ce := logger.Check(level, code); ce != nil {
			ce.Write(
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		}
		httputil.JSONError(w, status, code, message)
	}
}
