// File: pkg/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Window() WindowConfig
	Action() ActionConfig
	Selector() SelectorConfig
	Site() SiteConfig

	SetWindowWaitTimeout(d time.Duration)
	SetActionDefaultWaitTimeout(d time.Duration)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	WindowCfg   WindowConfig   `mapstructure:"window" yaml:"window"`
	ActionCfg   ActionConfig   `mapstructure:"action" yaml:"action"`
	SelectorCfg SelectorConfig `mapstructure:"selector" yaml:"selector"`
	SiteCfg     SiteConfig     `mapstructure:"site" yaml:"site"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) Window() WindowConfig     { return c.WindowCfg }
func (c *Config) Action() ActionConfig     { return c.ActionCfg }
func (c *Config) Selector() SelectorConfig { return c.SelectorCfg }
func (c *Config) Site() SiteConfig         { return c.SiteCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetWindowWaitTimeout(d time.Duration) { c.WindowCfg.WaitTimeout = d }
func (c *Config) SetActionDefaultWaitTimeout(d time.Duration) {
	c.ActionCfg.DefaultWaitTimeout = d
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// WindowConfig tunes the active-window tracker.
type WindowConfig struct {
	// WaitTimeout bounds every wait for a new page event.
	WaitTimeout time.Duration `mapstructure:"wait_timeout" yaml:"wait_timeout"`
	// SettlePause is slept before closing the last opened window, giving
	// approval popups time to finish their own close sequence.
	SettlePause time.Duration `mapstructure:"settle_pause" yaml:"settle_pause"`
	// FocusPause is slept before focusing a window by url.
	FocusPause time.Duration `mapstructure:"focus_pause" yaml:"focus_pause"`
}

type ActionConfig struct {
	DefaultWaitTimeout time.Duration `mapstructure:"default_wait_timeout" yaml:"default_wait_timeout"`
}

type SelectorConfig struct {
	// TestIDAttribute is the attribute GetByTestId targets. Callers that own
	// the playwright instance pass it to Selectors().SetTestIdAttribute.
	TestIDAttribute string `mapstructure:"test_id_attribute" yaml:"test_id_attribute"`
}

type SiteConfig struct {
	BaseURL      string `mapstructure:"base_url" yaml:"base_url"`
	DashboardURL string `mapstructure:"dashboard_url" yaml:"dashboard_url"`
}

// NewDefaultConfig returns a Config populated only with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers every default value on the given viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "wallet-e2e")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Window --
	v.SetDefault("window.wait_timeout", "5s")
	v.SetDefault("window.settle_pause", "2s")
	v.SetDefault("window.focus_pause", "500ms")

	// -- Action --
	v.SetDefault("action.default_wait_timeout", "3s")

	// -- Selector --
	v.SetDefault("selector.test_id_attribute", "data-testid")

	// -- Site --
	v.SetDefault("site.base_url", "")
	v.SetDefault("site.dashboard_url", "https://app.dev.japanopenchain.org/")
}

// ConfigDir returns the per-user configuration directory ($HOME/.wallet-e2e).
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, ".wallet-e2e"), nil
}

// NewConfigFromViper builds and validates a Config from a viper instance.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The dashboard url keeps its historical variable name.
	if err := v.BindEnv("site.dashboard_url", "JOC_DASHBOARD_TESTING_URL"); err != nil {
		return nil, fmt.Errorf("error binding dashboard url env: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.LoggerCfg.LogFile != "" {
		expanded, err := homedir.Expand(cfg.LoggerCfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("invalid logger.log_file: %w", err)
		}
		cfg.LoggerCfg.LogFile = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded configuration for values the runtime cannot use.
func (c *Config) Validate() error {
	if c.WindowCfg.WaitTimeout <= 0 {
		return fmt.Errorf("window.wait_timeout must be a positive duration")
	}
	if c.WindowCfg.SettlePause < 0 || c.WindowCfg.FocusPause < 0 {
		return fmt.Errorf("window pauses must not be negative")
	}
	if c.ActionCfg.DefaultWaitTimeout <= 0 {
		return fmt.Errorf("action.default_wait_timeout must be a positive duration")
	}
	if c.SelectorCfg.TestIDAttribute == "" {
		return fmt.Errorf("selector.test_id_attribute is a required configuration field")
	}
	switch c.LoggerCfg.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be one of console, json (got %q)", c.LoggerCfg.Format)
	}
	return nil
}
