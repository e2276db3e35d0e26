package router

import "time"

// Config holds the tunables of the default middleware chain. Field tags
// allow it to be decoded straight from the service configuration.
type Config struct {
	Timeout         time.Duration   `mapstructure:"timeout"`
	QuietdownRoutes []string        `mapstructure:"quietdownRoutes"`
	HideHeaders     []string        `mapstructure:"hideHeaders"`
	CORS            CORSConfig      `mapstructure:"cors"`
	RateLimit       RateLimitConfig `mapstructure:"rateLimit"`
}

// CORSConfig lists the allowed origins, methods and headers. CORS handling
// is skipped when Origins is empty.
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	Methods          []string `mapstructure:"methods"`
	Headers          []string `mapstructure:"headers"`
	AllowCredentials bool     `mapstructure:"allowCredentials"`
}

// RateLimitConfig configures a token bucket shared by all requests.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
	Burst             int     `mapstructure:"burst"`
}

func sanitizeConfig(cfg Config) Config {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS.Headers = cloneStrings(cfg.CORS.Headers)
	cfg.CORS.Methods = cloneStrings(cfg.CORS.Methods)
	cfg.CORS.Origins = cloneStrings(cfg.CORS.Origins)
	return cfg
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
