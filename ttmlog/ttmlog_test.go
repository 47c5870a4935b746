package ttmlog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cs6461/ttm/ttmlog"
)

func TestNewWritesEveryRecordToFile(t *testing.T) {
	var buf bytes.Buffer
	logger := ttmlog.New(&buf, true)

	logger.Info("assembled", "records", 4)
	logger.Warn("cache telemetry disabled")

	out := buf.String()
	if !strings.Contains(out, "assembled") {
		t.Errorf("file output missing info record: %q", out)
	}
	if !strings.Contains(out, "cache telemetry disabled") {
		t.Errorf("file output missing warn record: %q", out)
	}
}

func TestNewSuppressesStderrWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := ttmlog.New(&buf, true)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w
	logger.Error("illegal opcode fault")
	w.Close()
	os.Stderr = old

	var captured bytes.Buffer
	if _, err := captured.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	if captured.Len() != 0 {
		t.Errorf("expected no stderr output when quiet, got %q", captured.String())
	}
	if !strings.Contains(buf.String(), "illegal opcode fault") {
		t.Error("error record missing from file output")
	}
}

func TestNewEchoesWarnAndAboveToStderr(t *testing.T) {
	var buf bytes.Buffer
	logger := ttmlog.New(&buf, false)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w
	logger.Warn("reserved memory fault", "addr", 3)
	logger.Debug("step cycle 12")
	w.Close()
	os.Stderr = old

	var captured bytes.Buffer
	if _, err := captured.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	if !strings.Contains(captured.String(), "reserved memory fault") {
		t.Errorf("expected warn record echoed to stderr, got %q", captured.String())
	}
	if strings.Contains(captured.String(), "step cycle 12") {
		t.Error("debug record should not be echoed to stderr")
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ttm.log")

	logger, f, err := ttmlog.Open(path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Info("first run")
	f.Close()

	logger2, f2, err := ttmlog.Open(path, true)
	if err != nil {
		t.Fatalf("Open (second): %v", err)
	}
	logger2.Info("second run")
	f2.Close()

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(contents), "first run") || !strings.Contains(string(contents), "second run") {
		t.Errorf("expected both runs appended, got %q", string(contents))
	}
}
