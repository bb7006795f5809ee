package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "MCP_"

	// DevSigningKey is only accepted outside production.
	DevSigningKey = "dev-secret-key-change-in-production"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Server captures process-wide configuration. The three middleware knobs
// (rate limit, token TTL, audit sink) are the ones every pipeline stage reads.
type Server struct {
	Addr     string `koanf:"addr"`
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`

	RateLimitPerMinute int    `koanf:"rate_limit_per_minute"`
	TokenTTLSeconds    int    `koanf:"token_ttl_seconds"`
	AuditSinkPath      string `koanf:"audit_sink_path"`

	RateLimitBackend                string `koanf:"rate_limit_backend"`
	RedisAddr                       string `koanf:"redis_addr"`
	RateLimitCleanupIntervalSeconds int    `koanf:"rate_limit_cleanup_interval_seconds"`

	JWTSigningKey string `koanf:"jwt_signing_key"`
	JWTIssuer     string `koanf:"jwt_issuer"`
	AuthUsername  string `koanf:"auth_username"`
	AuthPassword  string `koanf:"auth_password"`

	// TrustedProxies is a comma separated list of CIDRs allowed to set X-Forwarded-For.
	TrustedProxies string `koanf:"trusted_proxies"`

	FHIRBaseURL           string `koanf:"fhir_base_url"`
	FHIRTimeoutSeconds    int    `koanf:"fhir_timeout_seconds"`
	RequestTimeoutSeconds int    `koanf:"request_timeout_seconds"`
	TracingEnabled        bool   `koanf:"tracing_enabled"`

	OpenEMRBaseURL        string `koanf:"openemr_base_url"`
	OpenEMRUsername       string `koanf:"openemr_username"`
	OpenEMRPassword       string `koanf:"openemr_password"`
	OpenEMRTimeoutSeconds int    `koanf:"openemr_timeout_seconds"`

	DiscoveryAPIKey string `koanf:"discovery_api_key"`
	GEMSAPIKey      string `koanf:"gems_api_key"`
	MedschemeAPIKey string `koanf:"medscheme_api_key"`
}

var defaults = map[string]any{
	"addr":                                ":8000",
	"env":                                 "dev",
	"log_level":                           "info",
	"rate_limit_per_minute":               60,
	"token_ttl_seconds":                   24 * 60 * 60,
	"audit_sink_path":                     "logs/audit.jsonl",
	"rate_limit_backend":                  BackendMemory,
	"redis_addr":                          "localhost:6379",
	"rate_limit_cleanup_interval_seconds": 60,
	"jwt_signing_key":                     DevSigningKey,
	"jwt_issuer":                          "medmcp",
	"auth_username":                       "admin",
	"auth_password":                       "password123",
	"trusted_proxies":                     "",
	"fhir_base_url":                       "https://hapi.fhir.org/baseR4",
	"fhir_timeout_seconds":                30,
	"request_timeout_seconds":             60,
	"tracing_enabled":                     false,
	"openemr_base_url":                    "http://localhost:8300",
	"openemr_username":                    "admin",
	"openemr_password":                    "pass",
	"openemr_timeout_seconds":             30,
}

// Load builds the configuration from defaults, an optional YAML file named by
// MCP_CONFIG_FILE, and MCP_* environment variables, in that order of precedence.
func Load() (*Server, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path := os.Getenv(envPrefix + "CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Server
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would otherwise surface as runtime failures.
func (c *Server) Validate() error {
	var errs []error
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("rate_limit_per_minute must be positive"))
	}
	if c.TokenTTLSeconds <= 0 {
		errs = append(errs, errors.New("token_ttl_seconds must be positive"))
	}
	if strings.TrimSpace(c.AuditSinkPath) == "" {
		errs = append(errs, errors.New("audit_sink_path is required"))
	}
	if c.RateLimitBackend != BackendMemory && c.RateLimitBackend != BackendRedis {
		errs = append(errs, fmt.Errorf("rate_limit_backend %q is not one of [memory redis]", c.RateLimitBackend))
	}
	if c.RateLimitBackend == BackendRedis && c.RedisAddr == "" {
		errs = append(errs, errors.New("redis_addr is required for the redis backend"))
	}
	if c.JWTSigningKey == "" {
		errs = append(errs, errors.New("jwt_signing_key is required"))
	}
	if c.IsProduction() && (c.JWTSigningKey == DevSigningKey || len(c.JWTSigningKey) < 32) {
		errs = append(errs, errors.New("jwt_signing_key must be a 32+ byte secret in production"))
	}
	if c.AuthUsername == "" || c.AuthPassword == "" {
		errs = append(errs, errors.New("auth_username and auth_password are required"))
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Server) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func (c *Server) RateLimitWindow() time.Duration {
	return time.Minute
}

func (c *Server) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func (c *Server) CleanupInterval() time.Duration {
	if c.RateLimitCleanupIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitCleanupIntervalSeconds) * time.Second
}

func (c *Server) FHIRTimeout() time.Duration {
	return time.Duration(c.FHIRTimeoutSeconds) * time.Second
}

func (c *Server) OpenEMRTimeout() time.Duration {
	return time.Duration(c.OpenEMRTimeoutSeconds) * time.Second
}

func (c *Server) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// TrustedProxyPrefixes parses TrustedProxies. Bare addresses are accepted as
// single-host prefixes.
func (c *Server) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, raw := range strings.Split(c.TrustedProxies, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted_proxies: %w", err)
			}
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted_proxies: %w", err)
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes, nil
}
