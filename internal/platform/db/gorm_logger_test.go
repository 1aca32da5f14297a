package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line is not JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

// TestGormLogger_Warn verifies that gorm warnings become zerolog JSON lines and info is dropped.
func TestGormLogger_Warn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf))

	gl.Warn(context.Background(), "slow migration on %s", "assets")
	gl.Info(context.Background(), "dropped below warn level")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[0]["component"] != "gorm" {
		t.Errorf("unexpected line %v", lines[0])
	}
	if lines[0]["message"] != "slow migration on assets" {
		t.Errorf("unexpected message %v", lines[0]["message"])
	}
}

// TestGormLogger_Trace verifies failed and slow queries are logged with their SQL, and record-not-found is not.
func TestGormLogger_Trace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf))
	sql := func() (string, int64) { return "SELECT * FROM assets", 0 }

	gl.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now(), sql, errors.New("no such table: assets"))
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	gl.Trace(context.Background(), time.Now(), sql, nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "error" || lines[0]["error"] != "no such table: assets" || lines[0]["sql"] != "SELECT * FROM assets" {
		t.Errorf("unexpected failed query line %v", lines[0])
	}
	if lines[1]["level"] != "warn" || lines[1]["message"] != "slow query" {
		t.Errorf("unexpected slow query line %v", lines[1])
	}
}

// TestGormLogger_Silent verifies LogMode(Silent) suppresses everything.
func TestGormLogger_Silent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf)).LogMode(logger.Silent)

	gl.Error(context.Background(), "boom")
	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}
