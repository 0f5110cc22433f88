package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the preview server configuration, loadable from environment
// variables (OFFERS_ prefix), flags, or YAML config files. The discount
// function itself takes no configuration; everything here shapes the local
// HTTP harness around it.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"preview server listen address"`
	Parallel     int    `default:"0" usage:"per-line evaluation concurrency, <=1 runs sequentially"`
	MaxBodyBytes int64  `default:"1048576" usage:"max accepted run input size in bytes" flag:"max-body-bytes"`
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"max requests per window"`
	Window time.Duration `default:"1m"  usage:"rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers, so the admin
// UI dev server can call the preview endpoint directly.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then applies platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "OFFERS",
		Files:     []string{"config.yaml", "/etc/offers-function/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided variables (Railway, Render,
// etc.) like PORT onto the OFFERS_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
