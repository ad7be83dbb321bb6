package logger_test

import (
	"context"
	"testing"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetFallsBackToDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	if logger.Get(context.Background()) == nil {
		t.Fatal("expected default logger, got nil")
	}
}

func TestWithLoggerOverridesDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	core, logs := observer.New(zap.InfoLevel)
	custom := zap.New(core)

	ctx := logger.WithLogger(context.Background(), custom)
	logger.Info(ctx, "hello")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry on the context logger, got %d", logs.Len())
	}
	if got := logs.All()[0].Message; got != "hello" {
		t.Fatalf("expected message %q, got %q", "hello", got)
	}
}

func TestWithFieldsAttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("app", "users"))
	logger.Info(ctx, "reset")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["app"] != "users" {
		t.Fatalf("expected field app=users, got %v", fields)
	}
}
