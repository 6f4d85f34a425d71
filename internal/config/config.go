// Package config loads and validates the process's startup
// configuration. Every failure here is a startup misconfiguration: the
// process must fail immediately rather than defer validation to first
// use.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/solrelay/txstream/internal/xerrors"
)

// Config is the fully validated process configuration.
type Config struct {
	HeliusAPIKey   string
	HeliusHost     string
	RedisURL       string
	DBGatewayKey   string
	DBGatewayURL   string
	ProxyFilePath  string
	Proxies        []string
	LogLevel       string
}

const defaultHeliusHost = "atlas-mainnet.helius-rpc.com"
const defaultRedisURL = "redis://127.0.0.1/"
const defaultDBGatewayURL = "https://gateway.internal"

// Load reads environment variables and the proxy file, returning a
// validated Config or a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		HeliusHost:    envOr("HELIUS_RPC_HOST", defaultHeliusHost),
		RedisURL:      envOr("REDIS_URL", defaultRedisURL),
		DBGatewayKey:  os.Getenv("DB_GATEWAY_API_KEY"),
		DBGatewayURL:  envOr("DB_GATEWAY_URL", defaultDBGatewayURL),
		ProxyFilePath: os.Getenv("PROXY_FILE"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}

	cfg.HeliusAPIKey = os.Getenv("HELIUS_RPC_API_KEY")
	if cfg.HeliusAPIKey == "" {
		return nil, xerrors.Startup("HELIUS_RPC_API_KEY must be set", fmt.Errorf("missing required env var"))
	}
	if cfg.DBGatewayKey == "" {
		return nil, xerrors.Startup("DB_GATEWAY_API_KEY must be set", fmt.Errorf("missing required env var"))
	}
	if cfg.ProxyFilePath == "" {
		return nil, xerrors.Startup("PROXY_FILE must be set", fmt.Errorf("missing required env var"))
	}

	proxies, err := loadProxyFile(cfg.ProxyFilePath)
	if err != nil {
		return nil, xerrors.Startup("could not load PROXY_FILE", err)
	}
	if len(proxies) == 0 {
		return nil, xerrors.Startup("PROXY_FILE must list at least one proxy", fmt.Errorf("empty proxies list"))
	}
	cfg.Proxies = proxies

	return cfg, nil
}

// proxiesFile is the YAML shape of PROXY_FILE: {proxies: [host:port:user:pass, ...]}.
type proxiesFile struct {
	Proxies []string `yaml:"proxies"`
}

func loadProxyFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read proxy file: %w", err)
	}
	var parsed proxiesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse proxy file: %w", err)
	}
	return parsed.Proxies, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
