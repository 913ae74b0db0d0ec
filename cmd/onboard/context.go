package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"onboard/internal/config"
	"onboard/internal/logging"
	"onboard/internal/portal"
	"onboard/internal/session"
)

// errNotLoggedIn is shown whenever a command needs an authenticated session.
var errNotLoggedIn = errors.New("not logged in; run 'onboard login' first")

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		// Logs go to a file so command output stays clean for the user.
		logFile, err := os.OpenFile(
			filepath.Join(cfg.Paths.LogDir, "onboard.log"),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644,
		)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: logFile,
		})
		if err != nil {
			logFile.Close()
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) sessionStore() (*session.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return session.NewStore(cfg.Paths.StateDir), nil
}

// activeSession loads the persisted session and fails when no login exists.
func (c *commandContext) activeSession() (*session.Session, *session.Store, error) {
	store, err := c.sessionStore()
	if err != nil {
		return nil, nil, err
	}
	state, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	if !state.Active() {
		return nil, nil, errNotLoggedIn
	}
	return state, store, nil
}

// anonymousClient builds a portal client without a session, for login and
// register.
func (c *commandContext) anonymousClient() (*portal.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return portal.NewClient(cfg.Portal.BaseURL,
		portal.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
	), nil
}

// portalClient builds an authenticated client. Upload commands pass a longer
// timeout through the timeout argument.
func (c *commandContext) portalClient(state *session.Session, timeout time.Duration) (*portal.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = cfg.RequestTimeout()
	}
	return portal.NewClient(cfg.Portal.BaseURL,
		portal.WithHTTPClient(&http.Client{Timeout: timeout}),
		portal.WithTokenProvider(session.NewProvider(state)),
	), nil
}
