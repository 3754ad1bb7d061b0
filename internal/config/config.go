// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from environment variables with the NTHCART prefix,
// e.g. NTHCART_HTTP_ADDR. Zero-config defaults run the whole server
// in-memory with journaling, caching and tracing disabled.
type Config struct {
	// HTTPAddr is the listen address of the shop API.
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// NthOrderForDiscount: a discount code becomes available after every
	// Nth completed order.
	NthOrderForDiscount int `envconfig:"NTH_ORDER_FOR_DISCOUNT" default:"2"`

	// DiscountPercent is the percentage carried by every issued code.
	DiscountPercent int `envconfig:"DISCOUNT_PERCENT" default:"10"`

	// RedisAddr enables the checkout idempotency cache when non-empty.
	RedisAddr string `envconfig:"REDIS_ADDR"`

	// JournalPath enables the SQLite order journal when non-empty.
	JournalPath string `envconfig:"JOURNAL_PATH"`

	// TracingEnabled turns on the OTLP trace exporter.
	TracingEnabled bool `envconfig:"TRACING_ENABLED" default:"false"`

	// OTLPEndpoint is the trace collector target. The unprefixed standard
	// OTEL_EXPORTER_OTLP_ENDPOINT variable works as a fallback; any
	// http:// or https:// scheme is stripped since the gRPC dialer wants a
	// bare host:port.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`

	// Environment tags exported telemetry (local, staging, prod).
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("nthcart", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.NthOrderForDiscount < 1 {
		return Config{}, fmt.Errorf("config: NTH_ORDER_FOR_DISCOUNT must be >= 1, got %d", cfg.NthOrderForDiscount)
	}
	if cfg.DiscountPercent < 1 || cfg.DiscountPercent > 100 {
		return Config{}, fmt.Errorf("config: DISCOUNT_PERCENT must be in 1..100, got %d", cfg.DiscountPercent)
	}
	cfg.OTLPEndpoint = stripScheme(cfg.OTLPEndpoint)
	return cfg, nil
}

func stripScheme(endpoint string) string {
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(endpoint, prefix) {
			return strings.TrimPrefix(endpoint, prefix)
		}
	}
	return endpoint
}
