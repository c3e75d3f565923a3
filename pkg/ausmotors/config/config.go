// Package config gathers the storefront settings from flags and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ausmotors/storefront/pkg/ausmotors/carousel"
	"github.com/ausmotors/storefront/pkg/ausmotors/notify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Setting keys, shared by flags and AUSMOTORS_* environment variables
const (
	KeyAddr            = "addr"
	KeyBackendURL      = "backend-url"
	KeyRequestTimeout  = "request-timeout"
	KeyTrackWidth      = "track-width"
	KeyCardWidth       = "card-width"
	KeyNotificationTTL = "notification-ttl"
	KeyLocale          = "locale"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
	KeyServiceName     = "service-name"
	KeySessionKey      = "session-key"
)

// EnvPrefix prefixes every environment variable
const EnvPrefix = "AUSMOTORS"

// Config holds the serve settings
type Config struct {
	Addr            string
	BackendURL      string
	RequestTimeout  time.Duration
	TrackWidth      int
	CardWidth       int
	NotificationTTL time.Duration
	Locale          language.Tag
	LogLevel        logrus.Level
	LogFormat       string
	ServiceName     string
	// SessionKey signs visitor cookies; empty means a random key per process
	SessionKey []byte
}

// SetDefaults registers the default values and environment binding on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyBackendURL, "http://localhost:3000")
	v.SetDefault(KeyRequestTimeout, 10*time.Second)
	v.SetDefault(KeyTrackWidth, 1200)
	v.SetDefault(KeyCardWidth, carousel.DefaultCardWidth)
	v.SetDefault(KeyNotificationTTL, notify.DefaultTTL)
	v.SetDefault(KeyLocale, "en-AU")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyServiceName, "ausmotors")
	v.SetDefault(KeySessionKey, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the settings from v. SERVER_ADDRESS, when set, overrides the address.
func Load(v *viper.Viper) (Config, error) {
	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	format := strings.ToLower(v.GetString(KeyLogFormat))
	if format != "json" && format != "text" {
		return Config{}, fmt.Errorf("log format must be json or text: %q", format)
	}
	locale, err := language.Parse(v.GetString(KeyLocale))
	if err != nil {
		return Config{}, fmt.Errorf("locale: %w", err)
	}

	cfg := Config{
		Addr:            v.GetString(KeyAddr),
		BackendURL:      v.GetString(KeyBackendURL),
		RequestTimeout:  v.GetDuration(KeyRequestTimeout),
		TrackWidth:      v.GetInt(KeyTrackWidth),
		CardWidth:       v.GetInt(KeyCardWidth),
		NotificationTTL: v.GetDuration(KeyNotificationTTL),
		Locale:          locale,
		LogLevel:        level,
		LogFormat:       format,
		ServiceName:     v.GetString(KeyServiceName),
		SessionKey:      []byte(v.GetString(KeySessionKey)),
	}
	if addr := os.Getenv("SERVER_ADDRESS"); len(addr) != 0 {
		cfg.Addr = addr
	}

	if cfg.BackendURL == "" {
		return Config{}, errors.New("backend url is required")
	}
	if cfg.CardWidth <= 0 {
		return Config{}, fmt.Errorf("card width must be a positive number: %d", cfg.CardWidth)
	}
	if n := len(cfg.SessionKey); n != 0 && n < 32 {
		return Config{}, fmt.Errorf("session key must be at least 32 bytes: got %d", n)
	}
	if cfg.TrackWidth < 0 {
		return Config{}, fmt.Errorf("track width must not be negative: %d", cfg.TrackWidth)
	}
	return cfg, nil
}

// Logger builds the process logger
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	if c.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stdout)
	logger.SetLevel(c.LogLevel)
	return logger
}
