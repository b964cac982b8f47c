package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Override keys understood by ApplyOverrides. The CLI binds its flags and the
// FOCUSHINT_* environment to these names.
const (
	KeyBackend          = "backend"
	KeyChars            = "chars"
	KeyLogLevel         = "log_level"
	KeyFont             = "font"
	KeyFontSize         = "font_size"
	KeyMargin           = "margin"
	KeyBgColor          = "bg_color"
	KeyBgColorFocused   = "bg_color_focused"
	KeyTextColor        = "text_color"
	KeyTextColorFocused = "text_color_focused"
)

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Backend:  "auto",
		Chars:    "sadfjklewcmpgh",
		LogLevel: "warn",
		Style: StyleConfig{
			FontFamily:       "Mono",
			FontSize:         72,
			Margin:           0.2,
			BgColor:          MustParseColor("rgba(30, 30, 30, 0.9)"),
			BgColorFocused:   MustParseColor("rgba(10, 10, 10, 0.9)"),
			TextColor:        MustParseColor("#dddddd"),
			TextColorFocused: MustParseColor("#ffffff"),
		},
	}
}

// Manager handles configuration
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// DefaultPath returns $XDG_CONFIG_HOME/focushint/config.yaml (or the
// ~/.config equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "focushint", "config.yaml"), nil
}

// NewManager loads configFile, or the default path when configFile is empty.
// A missing file yields the built-in defaults.
func NewManager(configFile string) (*Manager, error) {
	path := configFile
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	m := &Manager{configPath: path}

	if err := m.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.WithComponent("config").Debug().
			Str("path", m.configPath).
			Msg("Config file not found, using defaults")
		m.config = Defaults()
	} else {
		logger.WithComponent("config").Debug().
			Str("path", m.configPath).
			Msg("Config loaded")
	}

	return m, nil
}

// load reads the configuration from disk on top of the defaults, so a file
// only needs to name the values it changes.
func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := *m.config
	return &cfg
}

// Reset replaces the loaded configuration with the built-in defaults.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = Defaults()
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logger.WithComponent("config").Info().Str("path", m.configPath).Msg("Config saved")
	return nil
}

// GetConfigPath returns the path of the backing config file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// ApplyOverrides copies every key set in v (flags, environment) over the
// loaded configuration and validates the result.
func (m *Manager) ApplyOverrides(v *viper.Viper) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := *m.config

	if v.IsSet(KeyBackend) {
		cfg.Backend = v.GetString(KeyBackend)
	}
	if v.IsSet(KeyChars) {
		cfg.Chars = v.GetString(KeyChars)
	}
	if v.IsSet(KeyLogLevel) {
		cfg.LogLevel = v.GetString(KeyLogLevel)
	}
	if v.IsSet(KeyFont) {
		family, size, err := ParseFont(v.GetString(KeyFont))
		if err != nil {
			return err
		}
		cfg.Style.FontFamily = family
		if size > 0 {
			cfg.Style.FontSize = size
		}
	}
	if v.IsSet(KeyFontSize) {
		cfg.Style.FontSize = v.GetFloat64(KeyFontSize)
	}
	if v.IsSet(KeyMargin) {
		cfg.Style.Margin = v.GetFloat64(KeyMargin)
	}

	colors := []struct {
		key string
		dst *Color
	}{
		{KeyBgColor, &cfg.Style.BgColor},
		{KeyBgColorFocused, &cfg.Style.BgColorFocused},
		{KeyTextColor, &cfg.Style.TextColor},
		{KeyTextColorFocused, &cfg.Style.TextColorFocused},
	}
	for _, c := range colors {
		if !v.IsSet(c.key) {
			continue
		}
		parsed, err := ParseColor(v.GetString(c.key))
		if err != nil {
			return fmt.Errorf("%s: %w", c.key, err)
		}
		*c.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = &cfg
	return nil
}
