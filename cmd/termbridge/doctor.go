package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/termbridge/internal/config"
	"github.com/joss/termbridge/internal/history"
	"github.com/joss/termbridge/internal/probe"
	"github.com/joss/termbridge/internal/render"
	"github.com/joss/termbridge/internal/session"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Probe every candidate backend address",
		Long:  "Checks the health endpoint of every configured candidate address and reports latency per candidate. Unlike startup probing, doctor does not stop at the first live backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := probe.ProbeAll(cmd.Context(), config.Get().Candidates)

			render.Stdout().Print("%s", render.New(pretty).ProbeReport(report))

			if report.Selected == "" {
				return fmt.Errorf("no backend reachable")
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection and session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := session.NewManager(history.NewStore())
			// failure is a reportable state here, not an error
			m.Initialize(cmd.Context())

			sess, live := m.Current()
			render.Stdout().Print("%s", render.New(pretty).Status(m.Status(), sess, live))
			return nil
		},
	}
}
