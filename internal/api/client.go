// Package api provides the typed HTTP client for the terminal backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/joss/termbridge/internal/logging"
)

// ExecOutcome classifies the result of a remote execute call. Transport
// failures are a value, not an error: the dispatcher branches on them to
// decide whether the simulator should answer instead.
type ExecOutcome int

const (
	// ExecSuccess: backend reachable and the command succeeded.
	ExecSuccess ExecOutcome = iota
	// ExecLogicalFailure: backend reachable but reported command failure.
	ExecLogicalFailure
	// ExecTransportFailure: non-2xx status, network error, or malformed body.
	ExecTransportFailure
)

// ExecResult is the normalized outcome of one execute call.
type ExecResult struct {
	Outcome          ExecOutcome
	Output           string
	CurrentDirectory string
	// Message carries the backend error for logical failures, or a transport
	// description for transport failures.
	Message string
}

// Client talks to one backend base address.
type Client struct {
	base string
	http *http.Client
	log  *logging.Logger
}

// New creates a client for the given base address (no trailing slash).
// The underlying transport carries no request timeout: execute calls wait as
// long as the backend takes. Callers that need a bound use the context.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
		log:  logging.New("api").WithBackend(base),
	}
}

// Base returns the backend base address this client targets.
func (c *Client) Base() string {
	return c.base
}

// Health checks GET /api/health. Any non-2xx status is an error.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// NewSession creates a backend terminal session via POST /api/terminal/new.
// Returns the session id and its initial working directory.
func (c *Client) NewSession(ctx context.Context) (id, dir string, err error) {
	start := time.Now()

	var body newSessionResponse
	if err := c.postJSON(ctx, "/api/terminal/new", nil, &body); err != nil {
		return "", "", err
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = "backend rejected session creation"
		}
		return "", "", fmt.Errorf("create session: %s", msg)
	}
	if body.SessionID == "" {
		return "", "", fmt.Errorf("create session: response missing session_id")
	}

	c.log.WithSession(body.SessionID).TimedEvent("session_created", start, map[string]interface{}{
		"dir": body.CurrentDirectory,
	})
	return body.SessionID, body.CurrentDirectory, nil
}

// History fetches the command history for a session. The order is submission
// order, oldest first, exactly as the backend stores it.
func (c *Client) History(ctx context.Context, sessionID string) ([]string, error) {
	var body historyResponse
	if err := c.getJSON(ctx, "/api/terminal/history/"+sessionID, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = "backend rejected history request"
		}
		return nil, fmt.Errorf("load history: %s", msg)
	}
	return body.History, nil
}

// Execute runs a command in the given session and classifies the outcome.
func (c *Client) Execute(ctx context.Context, sessionID, command string) ExecResult {
	start := time.Now()

	payload := executeRequest{Command: command, SessionID: sessionID}
	var body executeResponse
	if err := c.postJSON(ctx, "/api/terminal/execute", payload, &body); err != nil {
		c.log.WithSession(sessionID).Warn("execute_transport_failure", nil, err)
		return ExecResult{Outcome: ExecTransportFailure, Message: err.Error()}
	}

	c.log.WithSession(sessionID).TimedEvent("execute", start, map[string]interface{}{
		"success": body.Success,
	})

	if !body.Success {
		// The backend reports failures on 200s two ways: error for request
		// problems, output for command diagnostics ("cd: no such directory").
		msg := body.Error
		if msg == "" {
			msg = body.Output
		}
		if msg == "" {
			msg = "command failed"
		}
		return ExecResult{
			Outcome:          ExecLogicalFailure,
			Output:           body.Output,
			CurrentDirectory: body.CurrentDirectory,
			Message:          msg,
		}
	}
	return ExecResult{
		Outcome:          ExecSuccess,
		Output:           body.Output,
		CurrentDirectory: body.CurrentDirectory,
	}
}

// Stats fetches the backend system snapshot.
func (c *Client) Stats(ctx context.Context) (*SystemStats, error) {
	var body statsResponse
	if err := c.getJSON(ctx, "/api/system/stats", &body); err != nil {
		return nil, err
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = "stats not available"
		}
		return nil, fmt.Errorf("system stats: %s", msg)
	}
	return &body.Stats, nil
}

// Processes lists backend processes, at most limit entries.
func (c *Client) Processes(ctx context.Context, limit int) ([]Process, error) {
	path := fmt.Sprintf("/api/system/processes?limit=%d", limit)
	var body processesResponse
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = "process list not available"
		}
		return nil, fmt.Errorf("processes: %s", msg)
	}
	return body.Processes, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: malformed response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
