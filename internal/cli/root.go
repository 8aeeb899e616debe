// Package cli implements the library command line: the HTTP server, the
// sample data seeder and version reporting.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entrypoint"
)

// BuildInfo is set from main at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "library",
		Short: "Local Library - a small catalog of authors, genres, books and copies",
		Long: `Local Library serves a server-rendered catalog web application.

Configuration is read from the environment (PORT, DATABASE_DRIVER,
DATABASE_PATH, DATABASE_DSN, CSRF_SECRET, READ_ONLY, ...).

Commands:
  library serve     Start the HTTP server (default)
  library seed      Populate the database with sample data
  library version   Print version information`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), info.Version)
			return nil
		},
	}

	root.AddCommand(
		newServeCommand(info),
		newSeedCommand(),
		newVersionCommand(info),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(info BuildInfo) {
	if err := NewRootCommand(info).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newServeCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the HTTP server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), info.Version)
			return nil
		},
	}
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout(), info)
		},
	}
}

func printVersion(w io.Writer, info BuildInfo) {
	fmt.Fprintf(w, "library %s (commit %s)\n", info.Version, info.Commit)
}
