package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/joss/termbridge/internal/api"
	"github.com/joss/termbridge/internal/probe"
	"github.com/joss/termbridge/internal/session"
	"github.com/joss/termbridge/internal/termlog"
)

// Renderer paints core state as text. pretty toggles color and ruling; the
// plain mode is for piped output.
type Renderer struct {
	pretty bool
}

// New creates a renderer.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Entry formats one output log entry according to its kind.
func (r *Renderer) Entry(e termlog.Entry) string {
	if !r.pretty {
		return e.Text
	}
	switch e.Kind {
	case termlog.KindSystem:
		return color.HiBlackString(e.Text)
	case termlog.KindCommand:
		return color.CyanString(e.Text)
	case termlog.KindError:
		return color.RedString(e.Text)
	default:
		return e.Text
	}
}

// Entries formats the whole output log, one entry per line group.
func (r *Renderer) Entries(entries []termlog.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(r.Entry(e))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ProbeReport formats a probe run, one line per candidate.
func (r *Renderer) ProbeReport(report probe.Report) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Backend Probe\n"))
		sb.WriteString(strings.Repeat("─", 50) + "\n")
	}

	for _, res := range report.Results {
		icon := StatusIcon(res.OK)
		if r.pretty {
			if res.OK {
				icon = color.GreenString(icon)
			} else {
				icon = color.RedString(icon)
			}
		}
		latency := FormatDuration(time.Duration(res.Latency) * time.Millisecond)
		if res.OK {
			fmt.Fprintf(&sb, "%s %s (%s)\n", icon, res.Address, latency)
		} else {
			fmt.Fprintf(&sb, "%s %s: %s\n", icon, res.Address, res.Error)
		}
	}

	if report.Selected != "" {
		fmt.Fprintf(&sb, "selected: %s\n", report.Selected)
	} else {
		sb.WriteString("no backend reachable, offline mode\n")
	}
	return sb.String()
}

// Status formats the connection summary for the status command.
func (r *Renderer) Status(status session.ConnectionStatus, sess session.Session, live bool) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Termbridge Status\n"))
		sb.WriteString(strings.Repeat("─", 40) + "\n")

		statusText := status.String()
		switch status {
		case session.StatusConnected:
			statusText = color.GreenString(statusText)
		case session.StatusError:
			statusText = color.RedString(statusText)
		}
		fmt.Fprintf(&sb, "  Backend: %s\n", statusText)
		if live {
			fmt.Fprintf(&sb, "  Session: %s\n", sess.ID)
			fmt.Fprintf(&sb, "  Address: %s\n", sess.BackendAddress)
			fmt.Fprintf(&sb, "  Cwd:     %s\n", sess.CurrentDirectory)
		}
	} else {
		fmt.Fprintf(&sb, "status=%s", status)
		if live {
			fmt.Fprintf(&sb, " session=%s address=%s cwd=%s", sess.ID, sess.BackendAddress, sess.CurrentDirectory)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Stats formats a backend system snapshot.
func (r *Renderer) Stats(s *api.SystemStats) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("System Stats\n"))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
	}
	fmt.Fprintf(&sb, "  CPU:    %.1f%%\n", s.CPUPercent)
	fmt.Fprintf(&sb, "  Memory: %s / %s (%.1f%%)\n", formatBytes(s.Memory.Used), formatBytes(s.Memory.Total), s.Memory.Percent)
	fmt.Fprintf(&sb, "  Disk:   %s / %s (%.1f%%)\n", formatBytes(s.Disk.Used), formatBytes(s.Disk.Total), s.Disk.Percent)
	return sb.String()
}

// Processes formats a backend process listing.
func (r *Renderer) Processes(procs []api.Process) string {
	if len(procs) == 0 {
		return "No processes reported\n"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.CyanString("Top Processes\n"))
	}
	fmt.Fprintf(&sb, "  %6s  %-24s %6s %6s\n", "PID", "NAME", "CPU%", "MEM%")
	for _, p := range procs {
		fmt.Fprintf(&sb, "  %6d  %-24s %6.1f %6.1f\n", p.PID, p.Name, p.CPUPercent, p.MemoryPercent)
	}
	return sb.String()
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(b)/float64(div), "KMGTPE"[exp])
}
