package config

const (
	defaultPortalBaseURL  = "http://localhost:8000"
	defaultRequestTimeout = 30
	defaultUploadTimeout  = 120
	defaultStateDir       = "~/.local/state/onboard"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Portal: Portal{
			BaseURL:        defaultPortalBaseURL,
			RequestTimeout: defaultRequestTimeout,
			UploadTimeout:  defaultUploadTimeout,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
