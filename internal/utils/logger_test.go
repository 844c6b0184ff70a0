package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUseFileLogAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFile)
	if err := UseFileLog(path); err != nil {
		t.Fatalf("UseFileLog failed: %v", err)
	}
	defer InitLogger(false)

	logger := GetLogger("test")
	logger.Info().Msg("hello from file log")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Log file missing: %v", err)
	}
	if !strings.Contains(string(data), "hello from file log") {
		t.Errorf("Log file does not contain the message:\n%s", data)
	}
	if !strings.Contains(string(data), "component=test") {
		t.Errorf("Log file missing component field:\n%s", data)
	}
}

func TestUseFileLogRejectsBadPath(t *testing.T) {
	if err := UseFileLog(filepath.Join(t.TempDir(), "missing", "dir", LogFile)); err == nil {
		t.Error("Expected error for unwritable path, got nil")
	}
}
