package config

import "testing"

func TestParseRedisPortBareInt(t *testing.T) {
	host, port, err := parseRedisPort("6379")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "" || port != "6379" {
		t.Fatalf("got host=%q port=%q", host, port)
	}
}

func TestParseRedisPortURLForm(t *testing.T) {
	host, port, err := parseRedisPort("tcp://10.0.0.5:6379")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "10.0.0.5" || port != "6379" {
		t.Fatalf("got host=%q port=%q", host, port)
	}
}

func TestParseRedisPortRejectsGarbage(t *testing.T) {
	if _, _, err := parseRedisPort("not-a-port"); err == nil {
		t.Fatal("expected an error for a malformed REDIS_PORT")
	}
}

func TestParseRedisPortRejectsWrongScheme(t *testing.T) {
	if _, _, err := parseRedisPort("http://10.0.0.5:6379"); err == nil {
		t.Fatal("expected an error for a non-tcp scheme")
	}
}

func TestLoadRequiresAPIKeyAndImage(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("USER_POD_IMAGE", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail without API_KEY/USER_POD_IMAGE")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("USER_POD_IMAGE", "example/user-pod:latest")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RedisHost != "redis" {
		t.Fatalf("unexpected default redis host: %s", cfg.RedisHost)
	}
	if cfg.SessionTTLSeconds != 86400 {
		t.Fatalf("unexpected default TTL: %d", cfg.SessionTTLSeconds)
	}
}

func TestLoadRejectsMalformedTTL(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("USER_POD_IMAGE", "example/user-pod:latest")
	t.Setenv("SESSION_TTL", "not-an-int")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load to reject a malformed SESSION_TTL")
	}
}
