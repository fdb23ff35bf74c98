// config/appconfig.go
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AppKey defines a configuration key outside CoreConfig. Packages register
// their keys with Load, which reads them from config files, environment
// variables, and command-line flags alongside the core keys.
type AppKey struct {
	// Name is the key name (e.g., "wasm_path", "submit_delay").
	// This is used as-is for config files and CLI flags.
	// For env vars, it's uppercased and prefixed (e.g., CONTACT_WASM_PATH).
	Name string

	// Default is the default value if not set elsewhere.
	// Supported types: string, int, int64, bool, []string, time.Duration.
	Default any

	// Desc is a short description for --help output.
	Desc string
}

// AppConfigValues holds the loaded app configuration values.
// Keys are the AppKey.Name values, values are the loaded configuration.
type AppConfigValues map[string]any

// String returns a string value or empty string if not found/wrong type.
func (a AppConfigValues) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Int returns an int value or 0 if not found/unparseable.
// Handles int and int64 (TOML/Viper returns int64 for integers) and
// numeric strings, which is what environment variables arrive as.
func (a AppConfigValues) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
	}
	return 0
}

// Duration parses a duration value from the config.
// Accepts:
//   - Duration strings: "10m", "1h30m", "90s", "2h"
//   - Numeric values: interpreted as seconds (e.g., 600 = 10 minutes)
//   - Plain numeric strings: "600" = 600 seconds
//
// Returns the default value if the key is not found, empty, or invalid.
// Use this for timeout, expiry, and interval configurations.
func (a AppConfigValues) Duration(key string, def time.Duration) time.Duration {
	raw := a[key]
	if raw == nil {
		return def
	}
	dur, err := parseDurationFlexible(raw, def)
	if err != nil {
		return def
	}
	return dur
}

// loadAppConfig loads the extra keys using the same precedence as the core
// config: flags > env > config files > defaults.
//
// The envPrefix is used for environment variables (e.g., "CONTACT" means
// the key "wasm_path" maps to env var "CONTACT_WASM_PATH").
//
// This function should be called after pflags are parsed and config files
// are loaded into the provided viper instance.
func loadAppConfig(logger *zap.Logger, v *viper.Viper, envPrefix string, keys []AppKey) AppConfigValues {
	if len(keys) == 0 {
		return make(AppConfigValues)
	}

	// Create a child viper for app config with the app's env prefix
	appV := viper.New()
	appV.SetEnvPrefix(envPrefix)
	appV.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	appV.AutomaticEnv()

	// Register each key
	for _, key := range keys {
		// Set default
		def := key.Default
		if d, ok := def.(time.Duration); ok {
			def = d.String()
		}
		appV.SetDefault(key.Name, def)

		// Bind env var
		_ = appV.BindEnv(key.Name)

		// Copy value from main viper if it was set in config file
		// (config files are loaded into the main viper instance)
		if v.IsSet(key.Name) {
			appV.Set(key.Name, v.Get(key.Name))
		}

		// Bind pflag if it was explicitly set
		if f := pflag.Lookup(key.Name); f != nil && f.Changed {
			_ = appV.BindPFlag(key.Name, f)
		}
	}

	// Build result map
	result := make(AppConfigValues, len(keys))
	for _, key := range keys {
		result[key.Name] = appV.Get(key.Name)
	}

	if logger != nil {
		// Log loaded app config (be careful not to log secrets)
		fields := make([]zap.Field, 0, len(keys))
		for _, key := range keys {
			// Skip keys that might contain secrets
			nameLower := strings.ToLower(key.Name)
			if strings.Contains(nameLower, "key") ||
				strings.Contains(nameLower, "secret") ||
				strings.Contains(nameLower, "password") ||
				strings.Contains(nameLower, "token") {
				fields = append(fields, zap.String(key.Name, "[REDACTED]"))
			} else {
				fields = append(fields, zap.Any(key.Name, result[key.Name]))
			}
		}
		logger.Info("site config loaded", fields...)
	}

	return result
}

// registerAppFlags registers command-line flags for app config keys.
// Must be called before pflag.Parse().
func registerAppFlags(keys []AppKey) error {
	for _, key := range keys {
		// Check if flag already exists
		if pflag.Lookup(key.Name) != nil {
			return fmt.Errorf("config key %q conflicts with existing flag", key.Name)
		}

		switch d := key.Default.(type) {
		case string:
			pflag.String(key.Name, d, key.Desc)
		case int:
			pflag.Int(key.Name, d, key.Desc)
		case int64:
			pflag.Int64(key.Name, d, key.Desc)
		case bool:
			pflag.Bool(key.Name, d, key.Desc)
		case time.Duration:
			pflag.String(key.Name, d.String(), key.Desc)
		case []string:
			// For string slices, accept JSON array on command line
			pflag.String(key.Name, "", key.Desc+" (JSON array)")
		default:
			return fmt.Errorf("config key %q has unsupported default type %T", key.Name, key.Default)
		}
	}
	return nil
}
