package debug

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitDisabled(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if Enabled() {
		t.Error("expected disabled logging")
	}
	if log.Writer() != io.Discard {
		t.Errorf("expected io.Discard, got %v", log.Writer())
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flexterm.log")
	if err := Init(path); err != nil {
		t.Fatal(err)
	}
	defer Close()

	if !Enabled() {
		t.Fatal("expected enabled logging")
	}
	log.Printf("routed key to %s", "editor-left")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "routed key to editor-left") {
		t.Errorf("log file missing message: %q", data)
	}

	if err := Close(); err != nil {
		t.Fatal(err)
	}
	if log.Writer() != io.Discard {
		t.Error("Close should detach the logger")
	}
}
