package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/pagemark/internal/domain"
)

// Confirmation modes.
const (
	ConfirmPrompt = "prompt"
	ConfirmYes    = "yes"
	ConfirmNo     = "no"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration for pagemark.
type Config struct {
	// ConfirmMode selects how operator confirmations are answered.
	ConfirmMode string
	// ConfirmTimeout bounds the wait for an answer; zero waits forever.
	ConfirmTimeout time.Duration
	// PreviewDelay is how long the preview stays up before the question.
	PreviewDelay time.Duration

	Format   string
	Output   string
	LogLevel string

	Watch         bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ConfirmMode:   ConfirmPrompt,
		Format:        FormatText,
		LogLevel:      "info",
		WatchDebounce: 200 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.ConfirmMode {
	case ConfirmPrompt, ConfirmYes, ConfirmNo:
	default:
		return fmt.Errorf("%w: confirm mode %q (want prompt, yes or no)", domain.ErrInvalidConfig, c.ConfirmMode)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: format %q (want text or json)", domain.ErrInvalidConfig, c.Format)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}
	if c.ConfirmTimeout < 0 {
		return fmt.Errorf("%w: confirm timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.PreviewDelay < 0 {
		return fmt.Errorf("%w: preview delay must not be negative", domain.ErrInvalidConfig)
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("%w: watch debounce must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
