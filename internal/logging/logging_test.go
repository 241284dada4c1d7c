package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joss/termbridge/internal/config"
)

func TestRunIDStable(t *testing.T) {
	a := RunID()
	b := RunID()

	if a == "" {
		t.Fatal("RunID returned empty string")
	}
	if a != b {
		t.Errorf("RunID not stable: %s != %s", a, b)
	}
}

func TestLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("session").WithSession("sess-1").WithBackend("http://localhost:8000").WithOutput(&buf)

	l.Info("created", map[string]interface{}{"dir": "/home"})

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Component != "session" {
		t.Errorf("component = %s, want session", e.Component)
	}
	if e.Event != "created" {
		t.Errorf("event = %s, want created", e.Event)
	}
	if e.Session != "sess-1" {
		t.Errorf("session = %s, want sess-1", e.Session)
	}
	if e.Level != LevelInfo {
		t.Errorf("level = %s, want info", e.Level)
	}
	if e.Run == "" {
		t.Error("run id should not be empty")
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := New("dispatch").WithOutput(&buf)

	l.Error("execute_failed", nil, errors.New("connection refused"))

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Error != "connection refused" {
		t.Errorf("error = %s, want connection refused", e.Error)
	}
	if e.Level != LevelError {
		t.Errorf("level = %s, want error", e.Level)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	config.Reset()
	os.Unsetenv("TERMBRIDGE_DEBUG")
	defer config.Reset()

	var buf bytes.Buffer
	l := New("probe").WithOutput(&buf)

	l.Debug("candidate_skipped", nil)

	if buf.Len() != 0 {
		t.Errorf("debug event emitted without TERMBRIDGE_DEBUG: %s", buf.String())
	}
}

func TestDebugEnabled(t *testing.T) {
	config.Reset()
	os.Setenv("TERMBRIDGE_DEBUG", "1")
	defer func() {
		os.Unsetenv("TERMBRIDGE_DEBUG")
		config.Reset()
	}()

	var buf bytes.Buffer
	l := New("probe").WithOutput(&buf)

	l.Debug("candidate_skipped", nil)

	if buf.Len() == 0 {
		t.Error("debug event not emitted with TERMBRIDGE_DEBUG=1")
	}
}

func TestTimedEvent(t *testing.T) {
	var buf bytes.Buffer
	l := New("api").WithOutput(&buf)

	l.TimedEvent("execute", time.Now().Add(-50*time.Millisecond), nil)

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Duration < 50 {
		t.Errorf("duration = %dms, want >= 50", e.Duration)
	}
}
