package applog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, nil))
	for i := 0; i < 5; i++ {
		logger.Info("generate", "n", i)
	}
	logger.Error("llm failed", "err", "timeout")
	_, _ = file.WriteString("plain text line\n")
	_ = file.Close()

	entries, err := NewFile(path).Tail(3)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "generate" || entries[0].Data["n"] != float64(4) {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Level != "ERROR" || entries[1].Data["err"] != "timeout" || entries[1].Timestamp == "" {
		t.Fatalf("unexpected error entry %+v", entries[1])
	}
	if entries[2].Raw != "plain text line" || entries[2].Message != "" {
		t.Fatalf("unexpected raw entry %+v", entries[2])
	}
}

func TestTail_MissingFileAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")
	f := NewFile(path)
	entries, err := f.Tail(10)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected no entries, got %v (%v)", entries, err)
	}
	if err := f.Truncate(); err != nil {
		t.Fatalf("truncate missing: %v", err)
	}

	if err := os.WriteFile(path, []byte(strings.Repeat(`{"msg":"x"}`+"\n", 3)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Truncate(); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	entries, _ = f.Tail(10)
	if len(entries) != 0 {
		t.Fatalf("expected empty log after truncate, got %d", len(entries))
	}
}
