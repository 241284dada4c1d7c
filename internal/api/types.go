package api

// Wire types for the backend JSON surface. Field names follow the backend's
// snake_case payloads exactly.

// newSessionResponse is the body of POST /api/terminal/new.
type newSessionResponse struct {
	Success          bool   `json:"success"`
	SessionID        string `json:"session_id"`
	CurrentDirectory string `json:"current_directory"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
}

// executeRequest is the body of POST /api/terminal/execute.
type executeRequest struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id"`
}

// executeResponse is the body of POST /api/terminal/execute.
type executeResponse struct {
	Success          bool   `json:"success"`
	Output           string `json:"output,omitempty"`
	CurrentDirectory string `json:"current_directory,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	Error            string `json:"error,omitempty"`
}

// historyResponse is the body of GET /api/terminal/history/{session_id}.
type historyResponse struct {
	Success       bool     `json:"success"`
	History       []string `json:"history"`
	TotalCommands int      `json:"total_commands"`
	Error         string   `json:"error,omitempty"`
}

// MemoryStats reports backend memory usage in bytes.
type MemoryStats struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Percent   float64 `json:"percent"`
}

// DiskStats reports backend root-filesystem usage in bytes.
type DiskStats struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// SystemStats is the backend's periodically sampled system snapshot.
type SystemStats struct {
	CPUPercent float64     `json:"cpu_percent"`
	Memory     MemoryStats `json:"memory"`
	Disk       DiskStats   `json:"disk"`
	Timestamp  string      `json:"timestamp"`
}

// statsResponse is the body of GET /api/system/stats.
type statsResponse struct {
	Success bool        `json:"success"`
	Stats   SystemStats `json:"stats"`
	Error   string      `json:"error,omitempty"`
}

// Process describes one entry from GET /api/system/processes.
type Process struct {
	PID           int     `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// processesResponse is the body of GET /api/system/processes.
type processesResponse struct {
	Success    bool      `json:"success"`
	Processes  []Process `json:"processes"`
	TotalShown int       `json:"total_shown"`
	Error      string    `json:"error,omitempty"`
}
