package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesUnderLogs(t *testing.T) {
	root := t.TempDir()
	log, err := New(root, "warn", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = SetLevel("info") }()

	if _, err := os.Stat(filepath.Join(root, "logs")); err != nil {
		t.Fatalf("logs dir: %v", err)
	}
	if log.Desugar().Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info enabled at level warn")
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	if !zap.L().Core().Enabled(zap.DebugLevel) {
		t.Fatalf("global logger did not follow SetLevel")
	}
}

func TestSetLevel_Rejects(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("SetLevel(loud) = nil, want error")
	}
	if err := SetLevel(""); err != nil {
		t.Fatalf("SetLevel(\"\") = %v, want info", err)
	}
}
