package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("nop logger should not enable any level")
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contactcsv.log")

	logger, err := New(path, "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("contact appended")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"contact appended"`) {
		t.Errorf("log missing info entry:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered at info level:\n%s", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Error("New() should reject an unknown level")
	}
}
