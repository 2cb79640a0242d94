package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete gateway configuration, loadable from
// environment variables (SWIFT_ prefix), flags, or YAML config files.
type Config struct {
	Addr string `default:"0.0.0.0:8080" usage:"gateway listen address"`

	// BackendURL is the root of the remote Swift Food API.
	BackendURL string `usage:"Swift Food API root URL (SWIFT_BACKEND_URL)" flag:"backend-url"`
	// BackendToken is the bearer token attached to backend requests.
	BackendToken string `usage:"bearer token for the Swift Food API" flag:"backend-token"`

	// ZoneMarkers are the substrings that mark a backend error message as
	// a delivery-zone rejection.
	ZoneMarkers []string `default:"London" usage:"delivery-zone marker substrings" flag:"zone-markers"`

	// GoogleAPIKey enables address geocoding when set.
	GoogleAPIKey string `usage:"Google Geocoding API key" flag:"google-api-key"`

	// PromoPackPath points at a bloom-filter promo pack built by
	// cmd/promopack. Empty disables the local promo pre-screen.
	PromoPackPath string `usage:"path to the promo pre-screen pack" flag:"promo-pack"`

	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"max requests per window"`
	Window time.Duration `default:"1m"  usage:"rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SWIFT",
		Files:     []string{"config.yaml", "/etc/swiftfood/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.BackendURL == "" {
		return nil, errors.New("backend URL is required: set SWIFT_BACKEND_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) onto the SWIFT_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
