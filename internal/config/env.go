package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/nibzard/yoshi-config/internal/rawconfig"
)

// envOverrides maps YOSHI_* variables to raw config keys. Unset variables
// leave the pointer nil.
type envOverrides struct {
	CDNPort           *int    `env:"YOSHI_CDN_PORT"`
	CDNURL            *string `env:"YOSHI_CDN_URL"`
	CDNSSL            *bool   `env:"YOSHI_CDN_SSL"`
	CDNDir            *string `env:"YOSHI_CDN_DIR"`
	HMR               *bool   `env:"YOSHI_HMR"`
	ClientProjectName *string `env:"YOSHI_CLIENT_PROJECT_NAME"`
}

// applyEnv overrides raw config keys from the environment and returns the
// overridden keys. A nil environ reads the process environment.
func applyEnv(raw rawconfig.RawConfig, environ map[string]string) ([]string, error) {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	var keys []string
	set := func(key string, value any) {
		raw.Set(key, value)
		keys = append(keys, key)
	}
	if o.CDNPort != nil {
		set("servers.cdn.port", *o.CDNPort)
	}
	if o.CDNURL != nil {
		set("servers.cdn.url", *o.CDNURL)
	}
	if o.CDNSSL != nil {
		set("servers.cdn.ssl", *o.CDNSSL)
	}
	if o.CDNDir != nil {
		set("servers.cdn.dir", *o.CDNDir)
	}
	if o.HMR != nil {
		set("hmr", *o.HMR)
	}
	if o.ClientProjectName != nil {
		set("clientProjectName", *o.ClientProjectName)
	}
	return keys, nil
}
