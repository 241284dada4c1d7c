// Package dispatch routes submitted commands: remote execution when a
// session is live, local simulation otherwise, and simulation as a
// best-effort fallback when the remote transport fails mid-session.
package dispatch

import (
	"context"
	gostrings "strings"
	"sync"

	"github.com/joss/termbridge/internal/api"
	"github.com/joss/termbridge/internal/config"
	"github.com/joss/termbridge/internal/history"
	"github.com/joss/termbridge/internal/logging"
	"github.com/joss/termbridge/internal/session"
	"github.com/joss/termbridge/internal/simulate"
	"github.com/joss/termbridge/internal/strings"
	"github.com/joss/termbridge/internal/termlog"
)

const clearedNotice = "Terminal cleared"

// Dispatcher handles one command end to end: echo, execute or simulate,
// result entries. The busy flag is the only concurrency control; a second
// dispatch while one is in flight is a no-op.
type Dispatcher struct {
	mu   sync.Mutex
	busy bool

	user     string
	sessions *session.Manager
	history  *history.Store
	cursor   *history.Cursor
	sim      *simulate.Simulator
	out      *termlog.Log
	log      *logging.Logger
}

// New wires a dispatcher over the shared state it mutates.
func New(sessions *session.Manager, store *history.Store, cursor *history.Cursor, sim *simulate.Simulator, out *termlog.Log) *Dispatcher {
	return &Dispatcher{
		user:     config.Get().User,
		sessions: sessions,
		history:  store,
		cursor:   cursor,
		sim:      sim,
		out:      out,
		log:      logging.New("dispatch"),
	}
}

// Busy reports whether a dispatch is in flight.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Dispatch handles one submitted command. Returns false without side effects
// when the input is blank or a dispatch is already running; otherwise it
// runs to completion and returns true. There is no cancellation beyond ctx.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string) bool {
	cmd := gostrings.TrimSpace(raw)
	if cmd == "" {
		return false
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return false
	}
	d.busy = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.busy = false
		d.mu.Unlock()
	}()

	d.history.Append(cmd)
	d.cursor.Reset()

	prompt := strings.Prompt(d.user, d.sessions.Directory(d.sim.Cwd()))
	d.out.Command(prompt + " " + cmd)

	isClear := gostrings.EqualFold(cmd, "clear")

	if client := d.sessions.Client(); client != nil {
		if d.remote(ctx, client, cmd, isClear) {
			return true
		}
		// transport failure: visible error already appended, answer offline
	}

	d.simulated(cmd, isClear)
	return true
}

// remote executes cmd against the live session. Returns false only on
// transport failure, which tells Dispatch to fall through to simulation.
func (d *Dispatcher) remote(ctx context.Context, client *api.Client, cmd string, isClear bool) bool {
	sess, ok := d.sessions.Current()
	if !ok {
		return false
	}

	res := client.Execute(ctx, sess.ID, cmd)
	switch res.Outcome {
	case api.ExecSuccess:
		d.sessions.UpdateDirectory(res.CurrentDirectory)
		if isClear {
			d.out.Clear(clearedNotice)
		} else if res.Output != "" {
			d.out.Output(res.Output)
		}
		return true

	case api.ExecLogicalFailure:
		d.sessions.UpdateDirectory(res.CurrentDirectory)
		d.out.Error(res.Message)
		return true

	default: // api.ExecTransportFailure
		d.log.WithSession(sess.ID).Warn("falling_back_to_simulation", map[string]interface{}{
			"command": cmd,
		}, nil)
		d.out.Error("backend unreachable: " + res.Message)
		return false
	}
}

func (d *Dispatcher) simulated(cmd string, isClear bool) {
	if isClear {
		d.out.Clear(clearedNotice)
		return
	}
	if text := d.sim.Run(cmd); text != "" {
		d.out.Output(text)
	}
}
