package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestLogger points the logger at a temp file and resets it afterwards.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(Reset)
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit_WritesBanner(t *testing.T) {
	logPath := setupTestLogger(t)

	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}
	if !strings.Contains(readLog(t, logPath), "Logger initialized") {
		t.Error("log file should contain the init banner")
	}
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if err := Init("/nonexistent/dir/hookchat.log"); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		logFn   func(string, ...any)
		marker  string
		written bool
	}{
		{"debug hidden at info", false, Debug, "debug-hidden-1", false},
		{"debug shown at debug", true, Debug, "debug-shown-2", true},
		{"info shown at info", false, Info, "info-shown-3", true},
		{"warn shown", false, Warn, "warn-shown-4", true},
		{"error shown", false, Error, "error-shown-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := setupTestLogger(t)
			SetDebug(tt.debug)

			tt.logFn("value=%s", tt.marker)

			got := strings.Contains(readLog(t, logPath), tt.marker)
			if got != tt.written {
				t.Errorf("marker written = %v, want %v", got, tt.written)
			}
		})
	}
}

func TestComponentLogger_AddsAttribute(t *testing.T) {
	logPath := setupTestLogger(t)

	ComponentLogger("Webhook").Info("request sent", "status", 200)

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=Webhook") {
		t.Errorf("expected component attribute in log, got:\n%s", content)
	}
	if !strings.Contains(content, "status=200") {
		t.Errorf("expected status attribute in log, got:\n%s", content)
	}
}

func TestWithConversation_AddsAttribute(t *testing.T) {
	logPath := setupTestLogger(t)

	WithConversation("conv-42").Info("cleared")

	if !strings.Contains(readLog(t, logPath), "conversation=conv-42") {
		t.Error("expected conversation attribute in log")
	}
}

func TestConcurrentLogging(t *testing.T) {
	setupTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Info("concurrent %d-%d", n, j)
			}
		}(i)
	}
	wg.Wait()
}

func TestClose_ThenLogDoesNotPanic(t *testing.T) {
	setupTestLogger(t)

	Close()
	Info("after close")
}

func TestClearLogs_RemovesExtraFiles(t *testing.T) {
	dir := t.TempDir()
	extra := filepath.Join(dir, "custom.log")
	if err := os.WriteFile(extra, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	count, err := ClearLogs(extra, extra, filepath.Join(dir, "missing.log"))
	if err != nil {
		t.Fatalf("ClearLogs() error = %v", err)
	}
	if count < 1 {
		t.Errorf("ClearLogs() count = %d, want at least 1", count)
	}
	if _, err := os.Stat(extra); !os.IsNotExist(err) {
		t.Error("extra log file should be removed")
	}
}
