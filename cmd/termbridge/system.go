package main

import (
	"github.com/spf13/cobra"

	"github.com/joss/termbridge/internal/api"
	"github.com/joss/termbridge/internal/probe"
	"github.com/joss/termbridge/internal/render"
)

func systemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Inspect the backend host",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show backend CPU, memory, and disk usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := probe.Find(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := api.New(addr).Stats(cmd.Context())
			if err != nil {
				return err
			}
			render.Stdout().Print("%s", render.New(pretty).Stats(stats))
			return nil
		},
	})

	var limit int
	procs := &cobra.Command{
		Use:   "ps",
		Short: "List backend processes by CPU usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := probe.Find(cmd.Context())
			if err != nil {
				return err
			}
			list, err := api.New(addr).Processes(cmd.Context(), limit)
			if err != nil {
				return err
			}
			render.Stdout().Print("%s", render.New(pretty).Processes(list))
			return nil
		},
	}
	procs.Flags().IntVar(&limit, "limit", 10, "Maximum number of processes to show")
	cmd.AddCommand(procs)

	return cmd
}
