// Package history stores submitted command strings in submission order and
// drives the up/down recall cursor over them.
package history

import "sync"

// Store is the ordered command history, oldest first. Append-only: clearing
// the screen never touches it. Safe for concurrent use; the backend history
// load runs on a different goroutine than recall.
type Store struct {
	mu       sync.Mutex
	commands []string
}

// NewStore returns an empty history.
func NewStore() *Store {
	return &Store{}
}

// Seed replaces the history wholesale with commands loaded from the backend,
// oldest first. Used once after session creation.
func (s *Store) Seed(commands []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands[:0], commands...)
}

// Append records a submitted command.
func (s *Store) Append(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, command)
}

// Len reports the number of stored commands.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands)
}

// At returns the command at index i, oldest first.
func (s *Store) At(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands[i]
}

// All returns a copy of the history, oldest first.
func (s *Store) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.commands))
	copy(out, s.commands)
	return out
}

// NotBrowsing is the cursor's rest position: the user is composing a fresh
// command, not recalling one.
const NotBrowsing = -1

// Cursor tracks the recall position over a Store. Position 0 is the most
// recently submitted command; larger values step further back. The cursor
// reads the store but never mutates it. A Seed that shrinks the history
// while browsing clamps the position to the new oldest entry.
type Cursor struct {
	mu    sync.Mutex
	store *Store
	pos   int
}

// NewCursor returns a cursor at rest over the given store.
func NewCursor(store *Store) *Cursor {
	return &Cursor{store: store, pos: NotBrowsing}
}

// Pos reports the raw cursor position, NotBrowsing when at rest.
func (c *Cursor) Pos() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// Browsing reports whether a recall is in progress.
func (c *Cursor) Browsing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos != NotBrowsing
}

// Older steps one command back in time and returns the selected command. At
// the oldest command the cursor stays put and the selection repeats. Returns
// ok=false only when the history is empty.
func (c *Cursor) Older() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	n := len(c.store.commands)
	if n == 0 {
		return "", false
	}
	if c.pos < n-1 {
		c.pos++
	} else {
		c.pos = n - 1
	}
	return c.store.commands[n-1-c.pos], true
}

// Newer steps one command forward in time. Stepping past the most recent
// command leaves browsing: the cursor rests and ok=false tells the caller to
// clear the input line.
func (c *Cursor) Newer() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	n := len(c.store.commands)
	if n == 0 || c.pos <= 0 {
		c.pos = NotBrowsing
		return "", false
	}
	if c.pos > n-1 {
		c.pos = n - 1
	}
	c.pos--
	return c.store.commands[n-1-c.pos], true
}

// Reset returns the cursor to rest. Called on every submit.
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = NotBrowsing
}
