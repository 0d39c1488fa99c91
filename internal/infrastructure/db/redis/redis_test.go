package redis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// 127.0.0.1:1 refuses connections on any sane host.
const deadAddr = "127.0.0.1:1"

func TestConnect_GivesUpAfterAttempts(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: deadAddr, Attempts: 2}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConnect_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, Config{Addr: deadAddr, Attempts: 5}, zerolog.Nop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
