package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything a run
// should refuse to start with (errors) or complain about (warnings).
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.API.BaseURL = strings.TrimSpace(out.API.BaseURL)
	out.API.SiteBase = strings.TrimRight(strings.TrimSpace(out.API.SiteBase), "/")
	out.SMTP.Host = strings.TrimSpace(out.SMTP.Host)
	out.SMTP.Username = strings.TrimSpace(out.SMTP.Username)
	out.SMTP.To = strings.TrimSpace(out.SMTP.To)

	if out.API.BaseURL == "" {
		res.addErr("api.base_url is required")
	} else if u, err := url.Parse(out.API.BaseURL); err != nil || u.Host == "" {
		res.addErr("api.base_url is not a valid URL: %q", out.API.BaseURL)
	}

	if out.API.MaxPages <= 0 {
		res.addErr("api.max_pages must be > 0")
	} else if out.API.MaxPages > 100 {
		res.addWarn("api.max_pages is very high (%d); the source rarely has that many pages.", out.API.MaxPages)
	}
	if out.API.TimeoutSeconds <= 0 {
		res.addErr("api.timeout_seconds must be > 0")
	}
	if out.API.RatePerSec <= 0 {
		res.addErr("api.rate_per_sec must be > 0")
	}
	if out.API.RateBurst <= 0 {
		res.addErr("api.rate_burst must be > 0")
	}

	// SMTP settings may legitimately be absent (dry runs, first local run);
	// a partial set is almost always a mistake though.
	configured := out.SMTP.Username != "" || out.SMTP.To != ""
	if configured {
		if out.SMTP.Host == "" {
			res.addErr("smtp.host is required when email is configured")
		}
		if out.SMTP.Port <= 0 || out.SMTP.Port > 65535 {
			res.addErr("smtp.port must be 1..65535")
		}
		if out.SMTP.Username == "" {
			res.addErr("smtp.username is required when smtp.to is set")
		}
		if out.SMTP.To == "" {
			res.addErr("smtp.to is required when smtp.username is set")
		}
	} else {
		res.addWarn("email is not configured; new listings will be logged but nobody gets notified.")
	}

	return out, res
}
