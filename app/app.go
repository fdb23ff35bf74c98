// app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/contactform/config"
	"github.com/dalemusser/contactform/httputil"
	"github.com/dalemusser/contactform/logging"
	"github.com/dalemusser/contactform/logging/zaplog"
	"github.com/dalemusser/contactform/metrics"
	"github.com/dalemusser/contactform/server"
	"go.uber.org/zap"
)

// Hooks are the pieces a binary supplies to Run.
type Hooks[C any] struct {
	// Name is used only for logging.
	Name string

	// LoadConfig returns the core config and the binary's own config.
	// It typically wraps config.Load.
	LoadConfig func(logger *zap.Logger) (*config.CoreConfig, C, error)

	// BuildHandler constructs the final http.Handler: router, middleware
	// and routes.
	BuildHandler func(core *config.CoreConfig, appCfg C, logger *zap.Logger) (http.Handler, error)
}

// Run executes the startup sequence:
//
//  1. Bootstrap logger
//  2. Load core + app config (Hooks.LoadConfig)
//  3. Build the final logger, optionally teed into a rolling file
//  4. Register default metrics
//  5. Wire shutdown signals to a context
//  6. Build the HTTP handler (Hooks.BuildHandler)
//  7. Serve until shutdown
func Run[C any](ctx context.Context, hooks Hooks[C]) error {
	bootstrap := zaplog.BootstrapLogger()
	defer bootstrap.Sync()
	bootstrap.Info("bootstrap logger initialized", zap.String("app", hooks.Name))

	coreCfg, appCfg, err := hooks.LoadConfig(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		return fmt.Errorf("load config: %w", err)
	}
	bootstrap.Info("config loaded",
		zap.String("env", coreCfg.Env),
		zap.String("log_level", coreCfg.LogLevel),
	)

	logger, err := zaplog.BuildLogger(coreCfg.LogLevel, coreCfg.Env)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger, closeLog := logging.WithFile(logger, coreCfg.LogFile, logging.FileOptions{Compress: true})
	defer func() {
		_ = logger.Sync()
		_ = closeLog()
	}()
	logger.Info("logger initialized", zap.String("app", hooks.Name), zap.String("log_file", coreCfg.LogFile))
	httputil.SetJSONLogger(logger)

	metrics.RegisterDefault(logger)

	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	handler, err := hooks.BuildHandler(coreCfg, appCfg, logger)
	if err != nil {
		logger.Error("handler build failed", zap.Error(err))
		return fmt.Errorf("build handler: %w", err)
	}

	if err := server.ListenAndServeWithContext(ctx, coreCfg, handler, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
