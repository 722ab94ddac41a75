package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bt/internal/bluez"
	"bt/internal/config"
	"bt/internal/logging"
)

// commandContext carries the lazily-initialized dependencies shared by every
// subcommand: configuration, the structured logger, and the BlueZ client
// dialer. Tests swap dial for a scripted replay client.
type commandContext struct {
	configFlag *string

	dial func(cfg *config.Config, logger *slog.Logger) (bluez.Client, error)

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	ctx := &commandContext{configFlag: configFlag}
	ctx.dial = func(cfg *config.Config, logger *slog.Logger) (bluez.Client, error) {
		return bluez.NewDBusClient(cfg.Adapter.Name, logger)
	}
	return ctx
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

// ensureLogger builds the file-backed logger; commands keep working with a
// no-op logger when the log file cannot be opened.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withClient dials the Bluetooth service, runs fn, and closes the client.
func (c *commandContext) withClient(fn func(bluez.Client) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	client, err := c.dial(cfg, c.ensureLogger())
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

func (c *commandContext) scanLockPath() string {
	cfg, err := c.ensureConfig()
	if err != nil {
		return filepath.Join(os.TempDir(), "bt-discovery.lock")
	}
	return cfg.ScanLockPath()
}

// scanDuration resolves the discovery window: the flag when set, otherwise
// the configured default.
func (c *commandContext) scanDuration(flagSet bool, flagValue uint8) uint8 {
	if flagSet {
		return flagValue
	}
	if cfg, err := c.ensureConfig(); err == nil {
		return cfg.Scan.DurationSeconds
	}
	return flagValue
}
