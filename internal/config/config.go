package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/tokencookie/internal/constants"
	"github.com/oshokin/tokencookie/internal/logger"
	"github.com/oshokin/tokencookie/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// CookieName is the name of the cookie that mirrors the identity token.
	CookieName string `mapstructure:"cookie_name"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxCookieSize caps the size of a single name=value pair kept by the in-memory document (e.g., "4KiB").
	MaxCookieSize string `mapstructure:"max_cookie_size"`
	// MaxCookies caps the number of cookies kept by the in-memory document.
	MaxCookies int `mapstructure:"max_cookies"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxCookieSize is the parsed cookie size limit in bytes.
	ParsedMaxCookieSize int64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".tokencookie.yaml"

	// EnvPrefix prefixes environment variables that override file settings.
	EnvPrefix = "TOKENCOOKIE"

	// DefaultLogLevel is used when the file does not set log_level.
	DefaultLogLevel = "info"

	// DefaultMaxCookieSize matches the per-cookie limit enforced by browsers.
	DefaultMaxCookieSize = "4KiB"

	// DefaultMaxCookies matches the per-domain cookie limit enforced by Chromium.
	DefaultMaxCookies = 180

	// invalidCookieNameChars are characters a cookie name cannot contain.
	invalidCookieNameChars = " \t\r\n;=,\""
)

// Static error definitions for better error handling.
var (
	// ErrEmptyCookieName indicates that the cookie name is missing.
	ErrEmptyCookieName = errors.New("cookie name cannot be empty")
	// ErrInvalidCookieName indicates that the cookie name contains forbidden characters.
	ErrInvalidCookieName = errors.New("cookie name contains forbidden characters")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidMaxCookies indicates that the cookie count limit is invalid.
	ErrInvalidMaxCookies = errors.New("max_cookies must be a positive integer")
	// ErrInvalidMaxCookieSize indicates that the cookie size limit is invalid.
	ErrInvalidMaxCookieSize = errors.New("max_cookie_size must be positive")
)

// LoadConfig loads configuration settings from a YAML file.
// Environment variables prefixed with EnvPrefix override values from the file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	v := viper.New()
	v.SetDefault("cookie_name", constants.DefaultCookieName)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("max_cookie_size", DefaultMaxCookieSize)
	v.SetDefault("max_cookies", DefaultMaxCookies)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.CookieName = strings.TrimSpace(cfg.CookieName)
	if cfg.CookieName == "" {
		return ErrEmptyCookieName
	}

	if strings.ContainsAny(cfg.CookieName, invalidCookieNameChars) {
		return fmt.Errorf("%w: '%s'", ErrInvalidCookieName, cfg.CookieName)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	maxCookieSize, err := humanize.ParseBytes(strings.TrimSpace(cfg.MaxCookieSize))
	if err != nil {
		return fmt.Errorf("failed to parse max cookie size: %w", err)
	}

	if maxCookieSize == 0 {
		return ErrInvalidMaxCookieSize
	}

	cfg.ParsedMaxCookieSize = utils.SafeUint64ToInt64(maxCookieSize)

	if cfg.MaxCookies <= 0 {
		return ErrInvalidMaxCookies
	}

	return nil
}
