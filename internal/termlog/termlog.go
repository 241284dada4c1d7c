// Package termlog holds the append-only output log shown in the terminal
// view. Entries are typed so the renderer can style prompts, output, and
// errors differently without parsing text.
package termlog

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind classifies a log entry for rendering.
type Kind string

const (
	// KindSystem is client-generated status text (banners, notices).
	KindSystem Kind = "system"
	// KindCommand echoes a submitted command line with its prompt.
	KindCommand Kind = "command"
	// KindOutput is command output, remote or simulated.
	KindOutput Kind = "output"
	// KindError is a failure message, logical or transport.
	KindError Kind = "error"
)

// Entry is one immutable line group in the output log.
type Entry struct {
	ID        string
	Kind      Kind
	Text      string
	Timestamp time.Time
}

// Log is an append-only sequence of entries. Appended entries are never
// edited or reordered; Clear is the only operation that discards them.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	entropy io.Reader
}

// New returns an empty log. Monotonic entropy keeps ULIDs minted within the
// same millisecond in mint order.
func New() *Log {
	return &Log{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Append adds an entry of the given kind and returns it. IDs are ULIDs, so
// lexical order matches append order.
func (l *Log) Append(kind Kind, text string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e := Entry{
		ID:        ulid.MustNew(ulid.Timestamp(now), l.entropy).String(),
		Kind:      kind,
		Text:      text,
		Timestamp: now,
	}
	l.entries = append(l.entries, e)
	return e
}

// System appends a system entry.
func (l *Log) System(text string) Entry { return l.Append(KindSystem, text) }

// Command appends a command-echo entry.
func (l *Log) Command(text string) Entry { return l.Append(KindCommand, text) }

// Output appends an output entry.
func (l *Log) Output(text string) Entry { return l.Append(KindOutput, text) }

// Error appends an error entry.
func (l *Log) Error(text string) Entry { return l.Append(KindError, text) }

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear discards all entries and seeds the log with a single system entry.
// The command history is not touched; clearing the screen does not forget
// what was typed.
func (l *Log) Clear(notice string) Entry {
	l.mu.Lock()
	l.entries = l.entries[:0]
	l.mu.Unlock()
	return l.System(notice)
}
