// Package site serves the contact page, its static assets and the compiled
// wasm bundle. No route accepts form data; the browser-side bundle
// intercepts the form's submit event.
package site

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dalemusser/contactform/config"
	"github.com/dalemusser/contactform/metrics"
	"github.com/dalemusser/contactform/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed assets/*.html.tmpl assets/static
var assets embed.FS

// Asset names used as metric labels.
const (
	assetPage     = "page"
	assetStatic   = "static"
	assetWasmExec = "wasm_exec"
	assetBundle   = "bundle"
)

// Site holds what the handlers need.
type Site struct {
	cfg    config.SiteConfig
	engine *templates.Engine
	static http.Handler
	logger *zap.Logger
}

// pageData is the template input for the contact page.
type pageData struct {
	Title       string
	SubmitDelay time.Duration
	GraceDelay  time.Duration
}

// New parses the embedded templates.
func New(cfg config.SiteConfig, logger *zap.Logger) (*Site, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine, err := templates.New(assets, logger, "assets/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	sub, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return nil, fmt.Errorf("site: static assets: %w", err)
	}
	return &Site{
		cfg:    cfg,
		engine: engine,
		static: http.StripPrefix("/static/", http.FileServerFS(sub)),
		logger: logger,
	}, nil
}

// Routes mounts the page and asset routes on r.
func (s *Site) Routes(r chi.Router) {
	r.Get("/", s.index)
	r.Get("/static/wasm_exec.js", s.file(s.cfg.WasmExecPath, "text/javascript; charset=utf-8", assetWasmExec))
	r.Get("/static/*", s.staticFile)
	r.Get("/contact.wasm", s.file(s.cfg.WasmPath, "application/wasm", assetBundle))
}

func (s *Site) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	s.engine.Render(w, "index", pageData{
		Title:       s.cfg.Title,
		SubmitDelay: s.cfg.SubmitDelay,
		GraceDelay:  s.cfg.GraceDelay,
	})
	metrics.AssetServed(assetPage)
}

func (s *Site) staticFile(w http.ResponseWriter, r *http.Request) {
	s.cacheable(w)
	s.static.ServeHTTP(w, r)
	metrics.AssetServed(assetStatic)
}

// file serves a build artifact from disk. A missing artifact is a 503: the
// host is up but the bundle has not been built yet.
func (s *Site) file(path, contentType, asset string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := os.Open(path)
		if err != nil {
			s.logger.Warn("asset unavailable", zap.String("asset", asset), zap.String("path", path), zap.Error(err))
			http.Error(w, "asset unavailable", http.StatusServiceUnavailable)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			s.logger.Warn("asset unavailable", zap.String("asset", asset), zap.String("path", path))
			http.Error(w, "asset unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", contentType)
		s.cacheable(w)
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		metrics.AssetServed(asset)
	}
}

func (s *Site) cacheable(w http.ResponseWriter) {
	if s.cfg.AssetMaxAge > 0 {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(s.cfg.AssetMaxAge))
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
}
