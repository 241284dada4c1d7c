package termlog

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendOrder(t *testing.T) {
	l := New()
	l.System("connected")
	l.Command("user@terminal:~$ ls")
	l.Output("main.go")
	l.Error("boom")

	entries := l.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, KindSystem, entries[0].Kind)
	assert.Equal(t, KindCommand, entries[1].Kind)
	assert.Equal(t, KindOutput, entries[2].Kind)
	assert.Equal(t, KindError, entries[3].Kind)
}

func TestIDsSortInAppendOrder(t *testing.T) {
	l := New()
	for i := 0; i < 50; i++ {
		l.Output(fmt.Sprintf("line %d", i))
	}

	entries := l.Entries()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	assert.True(t, sort.StringsAreSorted(ids), "ULIDs should sort in append order")
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := New()
	l.Output("original")

	entries := l.Entries()
	entries[0].Text = "mutated"

	assert.Equal(t, "original", l.Entries()[0].Text)
}

func TestClearSeedsSystemEntry(t *testing.T) {
	l := New()
	l.Command("user@terminal:~$ ls")
	l.Output("main.go")

	l.Clear("Terminal cleared")

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, KindSystem, entries[0].Kind)
	assert.Equal(t, "Terminal cleared", entries[0].Text)
}

func TestLen(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.Len())
	l.Output("a")
	l.Output("b")
	assert.Equal(t, 2, l.Len())
}
