// Package config loads the weaverd configuration from a file and WEAVERD_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/drblury/opweaver/router"
)

const envPrefix = "WEAVERD"

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Spec   SpecConfig    `mapstructure:"spec"`
	Router router.Config `mapstructure:"router"`
	Mongo  MongoConfig   `mapstructure:"mongo"`
	Log    LogConfig     `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	BaseURI         string        `mapstructure:"baseUri"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// SpecConfig points at the OpenAPI document. An empty Path selects the
// embedded document.
type SpecConfig struct {
	Path     string `mapstructure:"path"`
	Validate bool   `mapstructure:"validate"`
	// ValidateRequests enables the request validation layer of the router.
	ValidateRequests bool `mapstructure:"validateRequests"`
}

// MongoConfig enables the MongoDB readiness probe when URI is set.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	ConnectRetries int           `mapstructure:"connectRetries"`
	RetryDelay     time.Duration `mapstructure:"retryDelay"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Spec: SpecConfig{Validate: true},
		Router: router.Config{
			Timeout:         30 * time.Second,
			QuietdownRoutes: []string{"/healthz", "/readyz"},
			HideHeaders:     []string{"Authorization", "Cookie"},
		},
		Mongo: MongoConfig{ConnectRetries: 3, RetryDelay: time.Second},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads path (if not empty) and the environment on top of Default.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.address", cfg.Server.Address)
	v.SetDefault("server.baseUri", cfg.Server.BaseURI)
	v.SetDefault("server.readTimeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdownTimeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("spec.path", cfg.Spec.Path)
	v.SetDefault("spec.validate", cfg.Spec.Validate)
	v.SetDefault("spec.validateRequests", cfg.Spec.ValidateRequests)
	v.SetDefault("router.timeout", cfg.Router.Timeout)
	v.SetDefault("router.quietdownRoutes", cfg.Router.QuietdownRoutes)
	v.SetDefault("router.hideHeaders", cfg.Router.HideHeaders)
	v.SetDefault("router.cors.origins", cfg.Router.CORS.Origins)
	v.SetDefault("router.cors.methods", cfg.Router.CORS.Methods)
	v.SetDefault("router.cors.headers", cfg.Router.CORS.Headers)
	v.SetDefault("router.cors.allowCredentials", cfg.Router.CORS.AllowCredentials)
	v.SetDefault("router.rateLimit.requestsPerSecond", cfg.Router.RateLimit.RequestsPerSecond)
	v.SetDefault("router.rateLimit.burst", cfg.Router.RateLimit.Burst)
	v.SetDefault("mongo.uri", cfg.Mongo.URI)
	v.SetDefault("mongo.connectRetries", cfg.Mongo.ConnectRetries)
	v.SetDefault("mongo.retryDelay", cfg.Mongo.RetryDelay)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if c.Server.Address == "" {
		err = multierr.Append(err, errors.New("server.address is required"))
	}
	if c.Server.BaseURI != "" && !strings.HasPrefix(c.Server.BaseURI, "/") {
		err = multierr.Append(err, fmt.Errorf("server.baseUri %q must start with /", c.Server.BaseURI))
	}
	if c.Router.RateLimit.RequestsPerSecond < 0 {
		err = multierr.Append(err, errors.New("router.rateLimit.requestsPerSecond must not be negative"))
	}
	if c.Mongo.ConnectRetries < 0 {
		err = multierr.Append(err, errors.New("mongo.connectRetries must not be negative"))
	}
	if _, lerr := c.Log.SlogLevel(); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format %q must be json or text", c.Log.Format))
	}
	return err
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
