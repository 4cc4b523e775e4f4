package logger

import (
	"context"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialization must be safe
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerFields(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	log := Get()
	ctx := context.Background()
	log.Info(ctx, "field smoke test",
		String("k", "v"),
		Int("n", 3),
		Uint32("seed", 42),
		Float64("avg", 52.4),
		Bool("dry", true),
		Duration("took", 5*time.Millisecond),
		Any("mixed", []int{1, 2}),
	)
	log.Debug(ctx, "debug line")
	log.Warn(ctx, "warn line")
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("ingest")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "named logger works")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, lvl := range []string{"debug", "info", "", "warn", "warning", "ERROR"} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", lvl, err)
		}
	}

	if err := SetLevelString("shouting"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	// Restore the default for other tests
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("failed to restore info level: %v", err)
	}
}
