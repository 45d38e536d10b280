// Package config defines the calcd server configuration and its file loader.
package config

import (
	"fmt"
	"net"
	"strconv"
)

// Defaults for the server configuration.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 8000
	DefaultReadTimeout  = 30 // seconds
	DefaultWriteTimeout = 30 // seconds
)

// Config holds the calcd server configuration.
type Config struct {
	// Host is the bind address.
	Host string `json:"host" yaml:"host"`

	// Port is the HTTP listen port. Port 0 asks the kernel for a free port.
	Port int `json:"port" yaml:"port"`

	// ReadTimeout is the HTTP read timeout in seconds.
	ReadTimeout int `json:"readTimeout" yaml:"readTimeout"`

	// WriteTimeout is the HTTP write timeout in seconds.
	WriteTimeout int `json:"writeTimeout" yaml:"writeTimeout"`

	// Log configures operational logging.
	Log LogConfig `json:"log" yaml:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is the log output format (text, json).
	Format string `json:"format" yaml:"format"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 0 and 65535", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("invalid read timeout %d: must not be negative", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("invalid write timeout %d: must not be negative", c.WriteTimeout)
	}
	return nil
}
