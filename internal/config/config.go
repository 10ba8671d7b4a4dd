// Package config provides configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/karloscodes/cartridge"
	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ConfigName is the base name of the optional config file (viteurl.yaml, viteurl.json, ...).
const ConfigName = "viteurl"

// ViteURL holds the settings the view helper is built from.
type ViteURL struct {
	PublicDir string `mapstructure:"public-dir" yaml:"public-dir"`
	BuildDir  string `mapstructure:"build-dir" yaml:"build-dir"`
	DevServer string `mapstructure:"dev-server" yaml:"dev-server"`
	HotFile   string `mapstructure:"hot-file" yaml:"hot-file"`
	Entry     string `mapstructure:"entry" yaml:"entry"` // rendered by the preview index page
}

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname" yaml:"appname"`
	AppPort     string   `mapstructure:"appport" yaml:"appport"`
	Environment string   `mapstructure:"environment" yaml:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel" yaml:"loglevel"`

	// Templates rendered by the preview server; empty uses the embedded views
	ViewsDirectory string `mapstructure:"viewsdir" yaml:"viewsdir"`
	// URL prefix the public dir is served under
	PublicAssetsUrlPrefix string `mapstructure:"publicassetsurlprefix" yaml:"publicassetsurlprefix"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir" yaml:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb" yaml:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups" yaml:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays" yaml:"logsmaxageindays"`

	ViteURL ViteURL `mapstructure:"vite-url" yaml:"vite-url"`

	// File the configuration was read from, empty when only defaults and env were used
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

var (
	cfg  *Config
	once sync.Once
)

var (
	_ cartridge.Config            = (*Config)(nil)
	_ cartridge.LogConfigProvider = (*Config)(nil)
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		c, err := Load("")
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = c
	})
	return cfg
}

// Load reads the configuration from defaults, an optional config file and the
// environment. An empty path searches the working directory for viteurl.*.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("appname", "viteurl")
	v.SetDefault("appport", "3000")
	v.SetDefault("environment", Development)
	v.SetDefault("loglevel", string(LogLevelInfo))
	v.SetDefault("viewsdir", "")
	v.SetDefault("publicassetsurlprefix", "/")
	v.SetDefault("logsdir", "")
	v.SetDefault("logsmaxsizeinmb", 20)
	v.SetDefault("logsmaxbackups", 10)
	v.SetDefault("logsmaxageindays", 30)
	v.SetDefault("vite-url.public-dir", "")
	v.SetDefault("vite-url.build-dir", "")
	v.SetDefault("vite-url.dev-server", "")
	v.SetDefault("vite-url.hot-file", "hot")
	v.SetDefault("vite-url.entry", "src/main.js")

	v.BindEnv("appname", "VITEURL_APP_NAME")
	v.BindEnv("appport", "VITEURL_APP_PORT")
	v.BindEnv("environment", "VITEURL_ENV")
	v.BindEnv("loglevel", "VITEURL_LOG_LEVEL")
	v.BindEnv("viewsdir", "VITEURL_VIEWS_DIR")
	v.BindEnv("publicassetsurlprefix", "VITEURL_PUBLIC_ASSETS_URL_PREFIX")
	v.BindEnv("logsdir", "VITEURL_LOGS_DIR")
	v.BindEnv("logsmaxsizeinmb", "VITEURL_LOGS_MAX_SIZE_IN_MB")
	v.BindEnv("logsmaxbackups", "VITEURL_LOGS_MAX_BACKUPS")
	v.BindEnv("logsmaxageindays", "VITEURL_LOGS_MAX_AGE_IN_DAYS")
	v.BindEnv("vite-url.public-dir", "VITEURL_PUBLIC_DIR")
	v.BindEnv("vite-url.build-dir", "VITEURL_BUILD_DIR")
	v.BindEnv("vite-url.dev-server", "VITEURL_DEV_SERVER")
	v.BindEnv("vite-url.hot-file", "VITEURL_HOT_FILE")
	v.BindEnv("vite-url.entry", "VITEURL_ENTRY")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	c.ConfigFile = v.ConfigFileUsed()

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetAppName returns the application name (implements cartridge.LogConfigProvider).
func (c *Config) GetAppName() string {
	return c.AppName
}

// GetPort returns the HTTP server port (implements cartridge.Config interface).
func (c *Config) GetPort() string {
	return c.AppPort
}

// GetPublicDirectory returns the directory Vite builds into and the preview server serves (implements cartridge.Config interface).
func (c *Config) GetPublicDirectory() string {
	return c.ViteURL.PublicDir
}

// GetAssetsPrefix returns the URL prefix for static assets (implements cartridge.Config interface).
func (c *Config) GetAssetsPrefix() string {
	return c.PublicAssetsUrlPrefix
}

// GetLogLevel returns the log level as a string (implements cartridge.LogConfigProvider).
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// GetLogDirectory returns the logs directory (implements cartridge.LogConfigProvider).
func (c *Config) GetLogDirectory() string {
	return c.LogsDirectory
}

// GetLogMaxSizeMB returns the max log file size in MB.
func (c *Config) GetLogMaxSizeMB() int {
	return c.LogsMaxSizeInMb
}

// GetLogMaxBackups returns the max number of log backups.
func (c *Config) GetLogMaxBackups() int {
	return c.LogsMaxBackups
}

// GetLogMaxAgeDays returns the max age in days for log files.
func (c *Config) GetLogMaxAgeDays() int {
	return c.LogsMaxAgeInDays
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
