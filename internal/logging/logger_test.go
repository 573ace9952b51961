package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setscan/internal/config"
	"setscan/internal/logging"
)

func TestNewConsoleWritesComponentPrefix(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:            "debug",
		Format:           "console",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := logging.NewComponentLogger(logger, "scanner")
	component.Info("scan complete", logging.Int("folders", 3))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "scanner: scan complete") {
		t.Fatalf("expected component prefix in %q", line)
	}
	if !strings.Contains(line, "folders=3") {
		t.Fatalf("expected attr in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attr should be promoted, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewJSONEmitsLowercaseLevel(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.json")

	logger, err := logging.New(logging.Options{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("threshold adjusted")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte(`"level":"warn"`)) {
		t.Fatalf("expected lowercase level key, got %s", data)
	}
	if !bytes.Contains(data, []byte(`"msg":"threshold adjusted"`)) {
		t.Fatalf("expected msg key, got %s", data)
	}
}

func TestNewFromConfigCreatesLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("startup")

	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, "setscan.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestNoopHandlerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(os.ErrNotExist))
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should report disabled")
	}
}
