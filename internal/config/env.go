// Package config provides centralized configuration management.
// Eliminates scattered os.Getenv calls across the codebase.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Built-in backend candidates, tried in order. The second form matters on
// hosts where "localhost" resolves to ::1 but the backend binds IPv4 only.
var defaultCandidates = []string{
	"http://localhost:8000",
	"http://127.0.0.1:8000",
}

// Env holds all termbridge environment variables.
type Env struct {
	// Candidates are the backend base addresses tried in order (TERMBRIDGE_ADDRS)
	Candidates []string

	// User is the local user name shown in the prompt and by whoami (TERMBRIDGE_USER)
	User string

	// ProbeTimeout bounds each health probe request (TERMBRIDGE_PROBE_TIMEOUT_MS)
	ProbeTimeout time.Duration

	// Debug enables debug-level logging (TERMBRIDGE_DEBUG)
	Debug bool
}

var (
	env     *Env
	envOnce sync.Once
)

// Get returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Get() *Env {
	envOnce.Do(func() {
		env = &Env{
			Candidates:   splitAddrs(os.Getenv("TERMBRIDGE_ADDRS")),
			User:         getEnvDefault("TERMBRIDGE_USER", "user"),
			ProbeTimeout: getEnvMillis("TERMBRIDGE_PROBE_TIMEOUT_MS", 2000),
			Debug:        os.Getenv("TERMBRIDGE_DEBUG") == "1",
		}
	})
	return env
}

// Reset resets the cached environment (for testing).
func Reset() {
	envOnce = sync.Once{}
	env = nil
}

// DefaultCandidates returns the built-in candidate list.
func DefaultCandidates() []string {
	out := make([]string, len(defaultCandidates))
	copy(out, defaultCandidates)
	return out
}

func splitAddrs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return DefaultCandidates()
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimRight(strings.TrimSpace(part), "/")
		if addr != "" {
			out = append(out, addr)
		}
	}
	if len(out) == 0 {
		return DefaultCandidates()
	}
	return out
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallback) * time.Millisecond
}
