/*
Apache Score
Copyright 2022 The Apache Software Foundation

This product includes software developed at
The Apache Software Foundation (http://www.apache.org/).
*/
package command

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/celer-dev/celerc/internal/logging"
	"github.com/celer-dev/celerc/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "celerc",
	Short: "Celer route document compiler",
	Long: `celerc compiles a Celer project (a project manifest plus a tree of route
resources, local or fetched from a remote GitHub reference) into a compiled
route document, executes it into the line/map-coordinate form a client
renders, and can export that document through any registered plugin.`,
	Version:       version.BuildVersionString(),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(&logging.SimpleHandler{Writer: os.Stderr, Level: level}))
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}
