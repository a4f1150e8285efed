package db

import (
	"context"
	"testing"
)

func TestNewRedisClientRequiresAddr(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), RedisConfig{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestConnectPostgresRejectsBadURL(t *testing.T) {
	if _, err := ConnectPostgres(context.Background(), "://not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}
