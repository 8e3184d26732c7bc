package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "gcsbench.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	Eventf("hello %s", "world")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Fatalf("expected event content, got: %s", string(data))
	}
}

func TestInitWithoutFileKeepsStdout(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	Eventf("stdout %s", "only")
	if !strings.Contains(buf.String(), "stdout only") {
		t.Fatalf("expected event content, got: %s", buf.String())
	}
}

func TestCloseWithoutInit(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close without logfile: %v", err)
	}
}

func TestReinitClosesPreviousFile(t *testing.T) {
	tempDir := t.TempDir()
	first := filepath.Join(tempDir, "first.log")
	second := filepath.Join(tempDir, "second.log")

	if err := Init(first); err != nil {
		t.Fatalf("Init first: %v", err)
	}
	if err := Init(second); err != nil {
		t.Fatalf("Init second: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	Eventf("routed to second")
	_ = Close()

	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read second log: %v", err)
	}
	if !strings.Contains(string(data), "routed to second") {
		t.Fatalf("expected event in second log, got: %s", string(data))
	}
}
