package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(commands ...string) (*Store, *Cursor) {
	s := NewStore()
	for _, c := range commands {
		s.Append(c)
	}
	return s, NewCursor(s)
}

func TestAppendOrder(t *testing.T) {
	s, _ := seeded("pwd", "ls", "cd /tmp")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"pwd", "ls", "cd /tmp"}, s.All())
	assert.Equal(t, "pwd", s.At(0))
}

func TestSeedReplaces(t *testing.T) {
	s := NewStore()
	s.Append("stale")
	s.Seed([]string{"pwd", "ls"})

	assert.Equal(t, []string{"pwd", "ls"}, s.All())
}

func TestOlderWalksMostRecentFirst(t *testing.T) {
	_, c := seeded("first", "second", "third")

	got, ok := c.Older()
	require.True(t, ok)
	assert.Equal(t, "third", got)
	assert.Equal(t, 0, c.Pos())

	got, _ = c.Older()
	assert.Equal(t, "second", got)

	got, _ = c.Older()
	assert.Equal(t, "first", got)
}

func TestOlderClampsAtOldest(t *testing.T) {
	_, c := seeded("only")

	got, ok := c.Older()
	require.True(t, ok)
	assert.Equal(t, "only", got)

	got, ok = c.Older()
	require.True(t, ok)
	assert.Equal(t, "only", got)
	assert.Equal(t, 0, c.Pos())
}

func TestOlderEmptyHistory(t *testing.T) {
	_, c := seeded()

	_, ok := c.Older()
	assert.False(t, ok)
	assert.Equal(t, NotBrowsing, c.Pos())
}

func TestNewerReturnsToRest(t *testing.T) {
	_, c := seeded("first", "second", "third")

	// Walk back twice, then forward through the same entries.
	c.Older() // third
	c.Older() // second

	got, ok := c.Newer()
	require.True(t, ok)
	assert.Equal(t, "third", got)

	_, ok = c.Newer()
	assert.False(t, ok, "stepping past newest should clear the input")
	assert.Equal(t, NotBrowsing, c.Pos())
	assert.False(t, c.Browsing())
}

func TestNewerAtRestIsNoop(t *testing.T) {
	_, c := seeded("first")

	_, ok := c.Newer()
	assert.False(t, ok)
	assert.Equal(t, NotBrowsing, c.Pos())
}

func TestRoundTripSymmetry(t *testing.T) {
	// k older steps followed by k newer steps ends at rest with empty input.
	_, c := seeded("a", "b", "c", "d")

	for i := 0; i < 3; i++ {
		_, ok := c.Older()
		require.True(t, ok)
	}
	for i := 0; i < 2; i++ {
		_, ok := c.Newer()
		require.True(t, ok)
	}
	_, ok := c.Newer()
	assert.False(t, ok)
	assert.Equal(t, NotBrowsing, c.Pos())
}

func TestConcurrentSeedAndRecall(t *testing.T) {
	// The backend history load runs on a different goroutine than up/down
	// recall; run them together for the race detector.
	s, c := seeded("a", "b", "c")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Seed([]string{"x"})
			s.Append(fmt.Sprintf("cmd-%d", i))
			s.Seed([]string{"x", "y", "z"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.Older()
			c.Older()
			c.Newer()
			c.Reset()
			s.Len()
			s.All()
		}
	}()
	wg.Wait()
}

func TestOlderClampsAfterShrinkingSeed(t *testing.T) {
	s, c := seeded("a", "b", "c", "d")
	c.Older()
	c.Older()
	c.Older() // pos 2

	s.Seed([]string{"x", "y"})

	got, ok := c.Older()
	require.True(t, ok)
	assert.Equal(t, "x", got, "cursor clamps to the new oldest entry")

	got, ok = c.Newer()
	require.True(t, ok)
	assert.Equal(t, "y", got)
}

func TestResetOnSubmit(t *testing.T) {
	s, c := seeded("a", "b")
	c.Older()
	c.Older()

	s.Append("c")
	c.Reset()

	assert.Equal(t, NotBrowsing, c.Pos())
	got, _ := c.Older()
	assert.Equal(t, "c", got)
}
