package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err folds Errors into one error, or nil.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a trimmed copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.Sorting.Locale = strings.TrimSpace(out.Sorting.Locale)
	out.Logging.Level = strings.ToLower(strings.TrimSpace(out.Logging.Level))
	out.Logging.Format = strings.ToLower(strings.TrimSpace(out.Logging.Format))

	// ---- app ----
	if out.App.Host == "" {
		res.addErr("app.host is required")
	} else if ip := net.ParseIP(out.App.Host); out.App.Host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		res.addWarn("app.host %q is not a loopback address; the loaded jobs will be reachable from other machines.", out.App.Host)
	}
	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	// ---- upload ----
	if out.Upload.MaxBytes <= 0 {
		res.addErr("upload.max_bytes must be > 0")
	} else if out.Upload.MaxBytes > 256<<20 {
		res.addWarn("upload.max_bytes is very high (%d); the whole export is held in memory.", out.Upload.MaxBytes)
	}
	if out.Upload.PerSecond <= 0 {
		res.addErr("upload.per_second must be > 0")
	}
	if out.Upload.Burst < 1 {
		res.addErr("upload.burst must be >= 1")
	}

	// ---- sorting ----
	if out.Sorting.Locale == "" {
		res.addErr("sorting.locale is required")
	} else if _, err := language.Parse(out.Sorting.Locale); err != nil {
		res.addErr("sorting.locale %q is not a BCP 47 tag: %v", out.Sorting.Locale, err)
	}

	// ---- logging ----
	if _, err := logrus.ParseLevel(out.Logging.Level); err != nil {
		res.addErr("logging.level: %v", err)
	}
	switch out.Logging.Format {
	case "text", "json":
	default:
		res.addErr("logging.format must be text or json, got %q", out.Logging.Format)
	}

	return out, res
}
