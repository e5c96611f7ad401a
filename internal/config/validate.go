package config

import (
	"errors"
	"fmt"
	"net"
)

const maxPollIntervalMS = 60_000

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateWorker(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	if _, _, err := net.SplitHostPort(c.API.Bind); err != nil {
		return fmt.Errorf("api.bind must be host:port: %w", err)
	}
	return nil
}

func (c *Config) validateWorker() error {
	if c.Worker.PollIntervalMS <= 0 {
		return errors.New("worker.poll_interval_ms must be positive")
	}
	if c.Worker.PollIntervalMS > maxPollIntervalMS {
		return fmt.Errorf("worker.poll_interval_ms must not exceed %d", maxPollIntervalMS)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
