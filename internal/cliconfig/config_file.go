package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ConfirmMode    string `toml:"confirm"`
	ConfirmTimeout string `toml:"confirm_timeout"`
	PreviewDelay   string `toml:"preview_delay"`
	Format         string `toml:"format"`
	Output         string `toml:"output"`
	LogLevel       string `toml:"log_level"`
	Watch          *bool  `toml:"watch"`
	WatchDebounce  string `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.pagemark/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".pagemark", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("confirm", fc.ConfirmMode, &cfg.ConfirmMode)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("confirm-timeout", fc.ConfirmTimeout, &cfg.ConfirmTimeout); err != nil {
		return err
	}
	if err := s.setDuration("preview-delay", fc.PreviewDelay, &cfg.PreviewDelay); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
