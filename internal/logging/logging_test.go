package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	tests := []struct {
		name, configured, exeDir, expected string
	}{
		{"Configured", "/var/log/bi", "/opt/bi", "/var/log/bi"},
		{"NextToBinary", "", "/opt/bi", filepath.Join("/opt/bi", "logs")},
		{"WorkingDir", "", "", "logs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dir(tt.configured, tt.exeDir); got != tt.expected {
				t.Errorf("Dir() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w, err := newFileWriter(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer w.Close()

	if w.Filename != filepath.Join(dir, FileName) {
		t.Errorf("Expected file in %s, got %s", dir, w.Filename)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("Write probe should be removed")
	}
}

func TestNew_WritesToEverySink(t *testing.T) {
	var a, b bytes.Buffer
	logger := New(&a, &b)
	logger.Info().Str("page", "orders").Msg("View computed")

	for i, buf := range []*bytes.Buffer{&a, &b} {
		out := buf.String()
		if !strings.Contains(out, `"page":"orders"`) || !strings.Contains(out, `"time":`) {
			t.Errorf("Sink %d missing fields: %s", i, out)
		}
	}
}
