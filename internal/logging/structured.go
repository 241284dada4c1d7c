// Package logging provides structured JSON logging for termbridge components.
// Events go to stderr; stdout belongs to the rendered terminal output.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joss/termbridge/internal/config"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event represents a structured log event
type Event struct {
	Timestamp string                 `json:"ts"`
	Level     Level                  `json:"level"`
	Component string                 `json:"component"`
	Event     string                 `json:"event"`
	Run       string                 `json:"run,omitempty"`
	Session   string                 `json:"session,omitempty"`
	Backend   string                 `json:"backend,omitempty"`
	Duration  int64                  `json:"duration_ms,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

var (
	runID     string
	runIDOnce sync.Once
)

// RunID identifies this process for log correlation. Generated once per run;
// there is no cross-restart persistence to tie it to.
func RunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

// Logger provides structured logging scoped to a component.
type Logger struct {
	component string
	session   string
	backend   string
	out       io.Writer
}

// New creates a new logger for a component.
func New(component string) *Logger {
	return &Logger{component: component, out: os.Stderr}
}

// WithSession returns a logger carrying the backend session id.
func (l *Logger) WithSession(session string) *Logger {
	return &Logger{component: l.component, session: session, backend: l.backend, out: l.out}
}

// WithBackend returns a logger carrying the backend base address.
func (l *Logger) WithBackend(backend string) *Logger {
	return &Logger{component: l.component, session: l.session, backend: backend, out: l.out}
}

// WithOutput redirects log output (for testing).
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{component: l.component, session: l.session, backend: l.backend, out: w}
}

// log emits a structured log event
func (l *Logger) log(level Level, event string, extra map[string]interface{}, err error) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Run:       RunID(),
		Session:   l.session,
		Backend:   l.backend,
		Extra:     extra,
	}

	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug event. Suppressed unless TERMBRIDGE_DEBUG=1.
func (l *Logger) Debug(event string, extra map[string]interface{}) {
	if !config.Get().Debug {
		return
	}
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]interface{}) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]interface{}, err error) {
	l.log(LevelWarn, event, extra, err)
}

// Error logs an error event
func (l *Logger) Error(event string, extra map[string]interface{}, err error) {
	l.log(LevelError, event, extra, err)
}

// TimedEvent logs an info event with duration
func (l *Logger) TimedEvent(event string, start time.Time, extra map[string]interface{}) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: l.component,
		Event:     event,
		Run:       RunID(),
		Session:   l.session,
		Backend:   l.backend,
		Duration:  time.Since(start).Milliseconds(),
		Extra:     extra,
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(l.out, string(data))
}

// ProbeEvent logs a single candidate probe outcome.
func ProbeEvent(address string, ok bool, latency time.Duration, err error) {
	level := LevelInfo
	if !ok {
		level = LevelWarn
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: "probe",
		Event:     "health_check",
		Run:       RunID(),
		Backend:   address,
		Duration:  latency.Milliseconds(),
		Extra: map[string]interface{}{
			"ok": ok,
		},
	}

	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(os.Stderr, string(data))
}
