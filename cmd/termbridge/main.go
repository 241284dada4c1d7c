// Package main provides the termbridge CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joss/termbridge/internal/tui"
)

var (
	version = "0.1.0"
	pretty  = true
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "termbridge",
		Short: "Remote terminal session with offline fallback",
		Long: `termbridge keeps an interactive terminal session against a remote
command-execution backend and falls back to a local simulated shell when the
backend is unreachable.

Usage modes:
  termbridge            Start the interactive terminal (TTY required)
  termbridge exec CMD   Run a single command and print its output
  termbridge doctor     Probe every candidate backend address
  termbridge status     Show connection and session state`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("stdin is not a terminal; use 'termbridge exec' for scripted runs")
			}
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")

	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(execCmd())
	rootCmd.AddCommand(systemCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
