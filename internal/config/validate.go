package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePortal(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePortal() error {
	base := strings.TrimSpace(c.Portal.BaseURL)
	if base == "" {
		return fmt.Errorf("portal.base_url is required (create a config with 'onboard config init')")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("portal.base_url %q is not a valid URL", base)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("portal.base_url must use http or https, got %q", parsed.Scheme)
	}
	if c.Portal.RequestTimeout <= 0 {
		return fmt.Errorf("portal.request_timeout must be positive, got %d", c.Portal.RequestTimeout)
	}
	if c.Portal.UploadTimeout <= 0 {
		return fmt.Errorf("portal.upload_timeout must be positive, got %d", c.Portal.UploadTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
