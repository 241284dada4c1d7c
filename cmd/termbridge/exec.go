package main

import (
	gostrings "strings"

	"github.com/spf13/cobra"

	"github.com/joss/termbridge/internal/dispatch"
	"github.com/joss/termbridge/internal/history"
	"github.com/joss/termbridge/internal/render"
	"github.com/joss/termbridge/internal/session"
	"github.com/joss/termbridge/internal/simulate"
	"github.com/joss/termbridge/internal/termlog"
)

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec COMMAND...",
		Short: "Run a single command and print its output",
		Long:  "Runs one command through the normal dispatch path: remotely when a backend is reachable, simulated otherwise. Intended for scripts and non-TTY use.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := history.NewStore()
			cursor := history.NewCursor(store)
			out := termlog.New()
			sim := simulate.New()
			sessions := session.NewManager(store)

			// offline is fine, the dispatcher falls back to simulation
			sessions.Initialize(cmd.Context())

			d := dispatch.New(sessions, store, cursor, sim, out)
			d.Dispatch(cmd.Context(), gostrings.Join(args, " "))

			r := render.New(pretty)
			for _, e := range out.Entries() {
				// skip the echo line, scripts want the result only
				if e.Kind == termlog.KindCommand {
					continue
				}
				render.Stdout().Println("%s", r.Entry(e))
			}
			return nil
		},
	}
}
