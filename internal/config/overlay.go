package config

import (
	"os"
	"strconv"
	"strings"
)

// OverlayEnv applies the environment variables the watcher has always
// honored on top of the YAML config. Env wins so a CI schedule can run
// without shipping a config file at all.
func OverlayEnv(cfg *Config) {
	if v := os.Getenv("API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SITE_BASE"); v != "" {
		cfg.API.SiteBase = v
	}
	if v := os.Getenv("MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.MaxPages = n
		}
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SMTP.Port = n
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.SMTP.To = v
	}
	if v := strings.TrimSpace(os.Getenv("DEBUG")); v != "" {
		cfg.App.Debug = true
	}
}
