package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	base string
	err  error
}

func (f *fakeChecker) Base() string                     { return f.base }
func (f *fakeChecker) Health(ctx context.Context) error { return f.err }

// withFakes routes clientFor to a table of canned health results and records
// the order in which candidates were contacted.
func withFakes(t *testing.T, health map[string]error) *[]string {
	t.Helper()

	var tried []string
	orig := clientFor
	clientFor = func(address string) Checker {
		tried = append(tried, address)
		err, known := health[address]
		if !known {
			err = errors.New("unexpected candidate " + address)
		}
		return &fakeChecker{base: address, err: err}
	}
	t.Cleanup(func() { clientFor = orig })
	return &tried
}

func TestProbeFirstLiveWins(t *testing.T) {
	tried := withFakes(t, map[string]error{
		"http://a:8000": errors.New("connection refused"),
		"http://b:8000": nil,
		"http://c:8000": nil,
	})

	report := Probe(context.Background(), []string{"http://a:8000", "http://b:8000", "http://c:8000"})

	assert.Equal(t, "http://b:8000", report.Selected)
	// c must never be contacted once b answered
	assert.Equal(t, []string{"http://a:8000", "http://b:8000"}, *tried)
	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].OK)
	assert.Equal(t, "connection refused", report.Results[0].Error)
	assert.True(t, report.Results[1].OK)
}

func TestProbeAllFail(t *testing.T) {
	withFakes(t, map[string]error{
		"http://a:8000": errors.New("refused"),
		"http://b:8000": errors.New("timeout"),
	})

	report := Probe(context.Background(), []string{"http://a:8000", "http://b:8000"})

	assert.Empty(t, report.Selected)
	require.Len(t, report.Results, 2)
	for _, r := range report.Results {
		assert.False(t, r.OK)
		assert.NotEmpty(t, r.Error)
	}
}

func TestProbeNoCandidates(t *testing.T) {
	report := Probe(context.Background(), nil)

	assert.Empty(t, report.Selected)
	assert.Empty(t, report.Results)
}

func TestProbeAllChecksEveryCandidate(t *testing.T) {
	tried := withFakes(t, map[string]error{
		"http://a:8000": nil,
		"http://b:8000": errors.New("refused"),
		"http://c:8000": nil,
	})

	report := ProbeAll(context.Background(), []string{"http://a:8000", "http://b:8000", "http://c:8000"})

	assert.Equal(t, "http://a:8000", report.Selected)
	assert.Len(t, *tried, 3)
	require.Len(t, report.Results, 3)
	assert.True(t, report.Results[2].OK)
}
