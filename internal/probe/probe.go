// Package probe finds a live backend among the configured candidate
// addresses. Candidates are tried strictly in order; the first address whose
// health endpoint answers wins, and later candidates are never contacted.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/joss/termbridge/internal/api"
	"github.com/joss/termbridge/internal/config"
	"github.com/joss/termbridge/internal/logging"
)

// Result records the outcome of probing a single candidate address.
type Result struct {
	Address string `json:"address"`
	OK      bool   `json:"ok"`
	Latency int64  `json:"latency_ms"`
	Error   string `json:"error,omitempty"`
}

// Report holds the full probe run: every candidate tried, in order, and the
// selected address if any.
type Report struct {
	Selected string   `json:"selected,omitempty"`
	Results  []Result `json:"results"`
}

// Checker is the health-check dependency. *api.Client satisfies it.
type Checker interface {
	Base() string
	Health(ctx context.Context) error
}

// clientFor is swapped in tests.
var clientFor = func(address string) Checker {
	return api.New(address)
}

// Probe walks candidates in order and returns a report with the first live
// address selected. A candidate counts as live only when its health endpoint
// answers 2xx within the configured probe timeout. Probing stops at the first
// success; untried candidates do not appear in the report.
func Probe(ctx context.Context, candidates []string) Report {
	report := Report{Results: make([]Result, 0, len(candidates))}

	for _, addr := range candidates {
		res := check(ctx, addr)
		report.Results = append(report.Results, res)
		if res.OK {
			report.Selected = addr
			break
		}
	}
	return report
}

// ProbeAll checks every candidate regardless of earlier successes. Used by
// doctor, which wants the full picture rather than the first winner.
func ProbeAll(ctx context.Context, candidates []string) Report {
	report := Report{Results: make([]Result, 0, len(candidates))}

	for _, addr := range candidates {
		res := check(ctx, addr)
		report.Results = append(report.Results, res)
		if res.OK && report.Selected == "" {
			report.Selected = addr
		}
	}
	return report
}

// Find is the common entrypoint: probe the configured candidates and return
// the selected base address, or an error naming every failure.
func Find(ctx context.Context) (string, error) {
	candidates := config.Get().Candidates
	report := Probe(ctx, candidates)
	if report.Selected == "" {
		return "", fmt.Errorf("no backend reachable among %d candidate(s)", len(candidates))
	}
	return report.Selected, nil
}

func check(ctx context.Context, address string) Result {
	ctx, cancel := context.WithTimeout(ctx, config.Get().ProbeTimeout)
	defer cancel()

	start := time.Now()
	err := clientFor(address).Health(ctx)
	latency := time.Since(start)

	logging.ProbeEvent(address, err == nil, latency, err)

	res := Result{
		Address: address,
		OK:      err == nil,
		Latency: latency.Milliseconds(),
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
