package core

import "context"

type OptionKey string

const (
	ConfigOptionKey OptionKey = "service_config"
)

// Config holds the settings services are constructed with.
type Config struct {
	// EnforceInterface makes Invoke reject services that do not implement
	// their own Initialize.
	EnforceInterface bool `mapstructure:"enforce_interface"`
}

func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ConfigOptionKey, cfg)
}

func WithEnforceInterface(ctx context.Context, enforce bool) context.Context {
	cfg := GetConfig(ctx, Config{})
	cfg.EnforceInterface = enforce
	return WithConfig(ctx, cfg)
}

func GetConfig(ctx context.Context, defaultConfig Config) Config {
	cfg, ok := ctx.Value(ConfigOptionKey).(Config)
	if ok {
		return cfg
	}
	return defaultConfig
}

func IsEnforceInterfaceEnabled(ctx context.Context, defaultEnforce bool) bool {
	cfg, ok := ctx.Value(ConfigOptionKey).(Config)
	if ok {
		return cfg.EnforceInterface
	}
	return defaultEnforce
}
