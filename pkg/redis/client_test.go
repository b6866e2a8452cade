package redis

import (
	"testing"
	"time"

	"github.com/luisortegam/fieldvisits-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error when neither URL nor address set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://:secret@localhost:6380/2",
		PoolSize: 5,
	})
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("pool size should fall back to config, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:     "redis.internal:6379",
		Password:    "pw",
		DB:          1,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("build options: %v", err)
	}
	if opts.Addr != "redis.internal:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.Password != "pw" {
		t.Fatalf("unexpected password")
	}
	if opts.DialTimeout != 2*time.Second {
		t.Fatalf("unexpected dial timeout %s", opts.DialTimeout)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.IdempotencyKey("POST|/api/v1/schedule/transfers", "abc"); got != "fv:idempotency:POST|/api/v1/schedule/transfers:abc" {
		t.Fatalf("unexpected idempotency key %q", got)
	}
	if got := c.LockKey("cron-worker:dev"); got != "fv:lock:cron-worker:dev" {
		t.Fatalf("unexpected lock key %q", got)
	}
}
