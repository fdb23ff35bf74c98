// Command contactform hosts the contact page: markup, stylesheet, the Go
// wasm runtime shim and the compiled bundle, plus /health and /metrics.
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/dalemusser/contactform/app"
	"github.com/dalemusser/contactform/config"
	"github.com/dalemusser/contactform/metrics"
	"github.com/dalemusser/contactform/pantry/health"
	"github.com/dalemusser/contactform/pantry/version"
	"github.com/dalemusser/contactform/router"
	"github.com/dalemusser/contactform/site"
	"go.uber.org/zap"
)

func main() {
	hooks := app.Hooks[config.SiteConfig]{
		Name:         "contactform",
		LoadConfig:   loadConfig,
		BuildHandler: buildHandler,
	}
	if err := app.Run(context.Background(), hooks); err != nil {
		os.Exit(1)
	}
}

func loadConfig(logger *zap.Logger) (*config.CoreConfig, config.SiteConfig, error) {
	core, vals, err := config.Load(logger, config.SiteKeys()...)
	if err != nil {
		return nil, config.SiteConfig{}, err
	}
	siteCfg, err := config.SiteFromValues(vals)
	if err != nil {
		return nil, config.SiteConfig{}, err
	}
	return core, siteCfg, nil
}

func buildHandler(core *config.CoreConfig, siteCfg config.SiteConfig, logger *zap.Logger) (http.Handler, error) {
	s, err := site.New(siteCfg, logger)
	if err != nil {
		return nil, err
	}

	r := router.New(core, logger)
	health.Mount(r, map[string]health.Check{
		"wasm_bundle": health.FileReadable(siteCfg.WasmPath),
		"wasm_exec":   health.FileReadable(siteCfg.WasmExecPath),
	}, logger)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	version.Mount(r)
	s.Routes(r)

	logger.Info("handler built", zap.String("version", version.String()))

	return r, nil
}
