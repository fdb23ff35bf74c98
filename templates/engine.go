// templates/engine.go
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

// Engine holds the parsed page templates. Pages are executed into a buffer
// first so a failing template never leaves a half-written response.
type Engine struct {
	t      *template.Template
	logger *zap.Logger
}

// New parses every file matching patterns in fsys with Funcs installed.
func New(fsys fs.FS, logger *zap.Logger, patterns ...string) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t, err := template.New("").Funcs(Funcs()).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	logger.Debug("templates parsed", zap.String("defined", t.DefinedTemplates()))
	return &Engine{t: t, logger: logger}, nil
}

// Execute renders name into a byte slice.
func (e *Engine) Execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Render writes name as an HTML page, or a 500 if execution fails.
func (e *Engine) Render(w http.ResponseWriter, name string, data any) {
	out, err := e.Execute(name, data)
	if err != nil {
		e.logger.Error("template render failed", zap.String("name", name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}
