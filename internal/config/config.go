// Package config loads the control plane's env-var configuration,
// following the getEnv/getEnvInt idiom used throughout this codebase's
// entrypoints, extended with a tcp://host:port URL-form parser for
// REDIS_PORT and fatal validation of malformed values at startup.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config is the fully resolved, validated runtime configuration.
type Config struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string

	SessionTTLSeconds int

	UserPodImage string
	UserPodPort  int

	APIKey string

	SessionProfile string
	BaseDomain     string
	Namespace      string

	BackupClaim string
	BackupImage string

	ListenAddr      string
	LogLevel        string
	LogPretty       bool
	ShutdownTimeout string
}

// getEnv returns the value of key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvInt returns the integer value of key, or defaultValue if unset.
// A present-but-unparseable value is a fatal configuration error, raised by
// the caller, not silently defaulted.
func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

// getEnvBool returns the boolean value of key, or defaultValue if unset.
func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}

// parseRedisPort accepts either a bare port number ("6379") or a URL of the
// form "tcp://host:port" (the shape REDIS_PORT takes when Kubernetes
// injects a service-link env var) and returns the host override (empty if
// none) and the resolved port string.
func parseRedisPort(raw string) (hostOverride, port string, err error) {
	if !strings.Contains(raw, "://") {
		if _, convErr := strconv.Atoi(raw); convErr != nil {
			return "", "", fmt.Errorf("REDIS_PORT: invalid port %q: %w", raw, convErr)
		}
		return "", raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("REDIS_PORT: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "tcp" {
		return "", "", fmt.Errorf("REDIS_PORT: unsupported scheme %q", u.Scheme)
	}
	if u.Port() == "" {
		return "", "", fmt.Errorf("REDIS_PORT: URL %q has no port", raw)
	}
	return u.Hostname(), u.Port(), nil
}

// Load reads and validates the control plane's configuration from the
// environment. It returns an error rather than exiting so callers (and
// tests) control the fatal-at-startup behavior.
func Load() (*Config, error) {
	cfg := &Config{
		RedisHost:      getEnv("REDIS_HOST", "redis"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		UserPodImage:   getEnv("USER_POD_IMAGE", ""),
		APIKey:         getEnv("API_KEY", ""),
		SessionProfile: getEnv("SESSION_PROFILE", "default"),
		BaseDomain:     getEnv("BASE_DOMAIN", "preview.example"),
		Namespace:      getEnv("NAMESPACE", "default"),
		BackupClaim:    getEnv("BACKUP_CLAIM", ""),
		BackupImage:    getEnv("BACKUP_IMAGE", ""),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	rawPort := getEnv("REDIS_PORT", "6379")
	hostOverride, port, err := parseRedisPort(rawPort)
	if err != nil {
		return nil, err
	}
	if hostOverride != "" {
		cfg.RedisHost = hostOverride
	}
	cfg.RedisPort = port

	ttl, err := getEnvInt("SESSION_TTL", 86400)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTLSeconds = ttl

	podPort, err := getEnvInt("USER_POD_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.UserPodPort = podPort

	pretty, err := getEnvBool("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}
	cfg.LogPretty = pretty

	cfg.ShutdownTimeout = getEnv("SHUTDOWN_TIMEOUT", "30s")

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY must be set")
	}
	if cfg.UserPodImage == "" {
		return nil, fmt.Errorf("USER_POD_IMAGE must be set")
	}

	return cfg, nil
}
