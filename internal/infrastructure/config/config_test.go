package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func processWith(t *testing.T, env map[string]string) *Config {
	t.Helper()
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	})
	if err != nil {
		t.Fatalf("process config: %v", err)
	}
	return &cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := processWith(t, map[string]string{})

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 24*time.Hour)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q, want %q", cfg.Mongo.URI, "mongodb://localhost:27017")
	}
	if cfg.Mongo.Database != "note_system" {
		t.Errorf("Mongo.Database = %q, want %q", cfg.Mongo.Database, "note_system")
	}
	if cfg.Mongo.Timeout != 10*time.Second {
		t.Errorf("Mongo.Timeout = %v, want %v", cfg.Mongo.Timeout, 10*time.Second)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if cfg.Redis.Timeout != 5*time.Second {
		t.Errorf("Redis.Timeout = %v, want %v", cfg.Redis.Timeout, 5*time.Second)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg := processWith(t, map[string]string{
		"MONGO_URI":     "mongodb://db.internal:27017",
		"MONGO_TIMEOUT": "3s",
		"REDIS_ADDR":    "cache.internal:6379",
		"REDIS_TIMEOUT": "500ms",
	})

	if cfg.Mongo.URI != "mongodb://db.internal:27017" {
		t.Errorf("Mongo.URI = %q, want %q", cfg.Mongo.URI, "mongodb://db.internal:27017")
	}
	if cfg.Mongo.Timeout != 3*time.Second {
		t.Errorf("Mongo.Timeout = %v, want %v", cfg.Mongo.Timeout, 3*time.Second)
	}
	if cfg.Redis.Addr != "cache.internal:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "cache.internal:6379")
	}
	if cfg.Redis.Timeout != 500*time.Millisecond {
		t.Errorf("Redis.Timeout = %v, want %v", cfg.Redis.Timeout, 500*time.Millisecond)
	}
}
