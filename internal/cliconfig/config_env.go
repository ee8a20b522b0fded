package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PAGEMARK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("confirm", os.Getenv("PAGEMARK_CONFIRM"), &cfg.ConfirmMode)
	s.setString("format", os.Getenv("PAGEMARK_FORMAT"), &cfg.Format)
	s.setString("output", os.Getenv("PAGEMARK_OUTPUT"), &cfg.Output)
	s.setString("log-level", os.Getenv("PAGEMARK_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("confirm-timeout", os.Getenv("PAGEMARK_CONFIRM_TIMEOUT"), &cfg.ConfirmTimeout); err != nil {
		return err
	}
	if err := s.setDuration("preview-delay", os.Getenv("PAGEMARK_PREVIEW_DELAY"), &cfg.PreviewDelay); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("PAGEMARK_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	return s.setBoolFromString("watch", os.Getenv("PAGEMARK_WATCH"), &cfg.Watch)
}
