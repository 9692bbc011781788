package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/internal/suggest"
	"github.com/kastheco/fold/log"
	"github.com/kastheco/fold/plugins"
)

const (
	ConfigFileName    = "config.toml"
	ViewStoreFileName = "views.db"
)

// Motion levels for the transition engine.
const (
	MotionFull    = "full"
	MotionReduced = "reduced"
	MotionOff     = "off"
)

var motions = []string{MotionFull, MotionReduced, MotionOff}

// GetConfigDir returns the path to the application's configuration directory,
// ~/.config/fold.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fold"), nil
}

// SlideConfig controls panel transitions.
type SlideConfig struct {
	// Speed is the transition duration in milliseconds.
	Speed int `json:"speed,omitempty" toml:"speed,omitempty"`
	// Easing names the curve: ease, linear, ease-in, ease-out, ease-in-out, bounce.
	Easing string `json:"easing,omitempty" toml:"easing,omitempty"`
}

// Config represents the application configuration
type Config struct {
	// Mode is the initial group policy. Empty defers to the plugins.
	Mode string `json:"mode,omitempty" toml:"mode,omitempty"`
	// Plugins lists the plugins to load, in order.
	Plugins []string `json:"plugins" toml:"plugins"`
	// CloseOnDisable closes a panel when it is disabled. Defaults to true.
	CloseOnDisable *bool       `json:"close_on_disable,omitempty" toml:"close_on_disable,omitempty"`
	Slide          SlideConfig `json:"slide" toml:"slide"`
	// Safemode holds an opening panel in place while siblings collapse.
	Safemode *bool `json:"safemode,omitempty" toml:"safemode,omitempty"`
	// ScrollTo scrolls panels into view on the ScrollToOn events.
	ScrollTo   bool     `json:"scroll_to,omitempty" toml:"scroll_to,omitempty"`
	ScrollToOn []string `json:"scroll_to_on,omitempty" toml:"scroll_to_on,omitempty"`
	OpenOn     []string `json:"open_on,omitempty" toml:"open_on,omitempty"`
	// Motion is one of full, reduced or off.
	Motion string `json:"motion" toml:"motion"`
	// RestoreState reopens the panels that were open when a document was
	// last viewed.
	RestoreState bool `json:"restore_state" toml:"restore_state"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty" toml:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Plugins:      plugins.Names(),
		Slide:        SlideConfig{Speed: 300, Easing: "ease"},
		Motion:       MotionFull,
		RestoreState: true,
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// Validate rejects values the viewer cannot act on.
func (c *Config) Validate() error {
	if c.Motion != "" && !slices.Contains(motions, c.Motion) {
		return fmt.Errorf("invalid motion %q%s", c.Motion, suggest.Hint(c.Motion, motions))
	}
	for _, name := range c.Plugins {
		if !slices.Contains(plugins.Names(), name) {
			return fmt.Errorf("unknown plugin %q%s", name, suggest.Hint(name, plugins.Names()))
		}
	}
	if c.Slide.Speed < 0 {
		return fmt.Errorf("slide speed must not be negative, got %d", c.Slide.Speed)
	}
	return nil
}

// Settings returns the accordion settings layer described by c, with each
// override merged on top in order. Unset fields are left out so plugin and
// core defaults show through.
func (c *Config) Settings(overrides ...accordion.Settings) (accordion.Settings, error) {
	s := accordion.Settings{}
	if c.Mode != "" {
		s.Set("mode", c.Mode)
	}
	if c.CloseOnDisable != nil {
		s.Set("panel.closeOnDisable", *c.CloseOnDisable)
	}
	if c.Slide.Speed > 0 {
		s.Set("panel.slideOptions.speed", c.Slide.Speed)
	}
	if c.Slide.Easing != "" {
		s.Set("panel.slideOptions.easing", c.Slide.Easing)
	}
	if c.Safemode != nil {
		s.Set("safemode", *c.Safemode)
	}
	if c.ScrollTo {
		s.Set("scrollTo", true)
	}
	if len(c.ScrollToOn) > 0 {
		s.Set("scrollToOn", slices.Clone(c.ScrollToOn))
	}
	if len(c.OpenOn) > 0 {
		s.Set("openOn", slices.Clone(c.OpenOn))
	}
	return accordion.MergeSettings(append([]accordion.Settings{s}, overrides...)...)
}

// LoadTOMLConfigFrom decodes the TOML file at path over the defaults.
func LoadTOMLConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig reads the config file, writing the defaults on first run. Any
// problem is logged and the defaults are returned.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	cfg, err := LoadTOMLConfigFrom(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}
		log.ErrorLog.Printf("failed to load config file: %v", err)
		return DefaultConfig()
	}
	return cfg
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}

// ViewStorePath returns where remembered view state lives.
func ViewStorePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ViewStoreFileName), nil
}
