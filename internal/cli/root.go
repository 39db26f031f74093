// Package cli implements the textsynth command-line interface.
//
// # Commands
//
//   - generate: Run a synthesis batch from a configuration file
//   - layout: Render a text and write a debug image of its char boxes
//   - verify: Read written samples back with OCR and report accuracy
//   - serve: Expose the engine as MCP tools over stdio
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise the
// TEXTSYNTH_LOG_LEVEL environment variable selects the level. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Build information, set via ldflags:
//
//	-X github.com/ironsheep/textsynth/internal/cli.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// versionTemplate renders the --version output.
func versionTemplate() string {
	return fmt.Sprintf("textsynth %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// NewRootCommand creates the root command with all subcommands registered.
// Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "textsynth",
		Short:        "textsynth generates synthetic text images for OCR training",
		Long:         `textsynth renders words with random fonts, distorts their characters and layout, paints and textures them, and composites them onto compatible backgrounds to build OCR training sets.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), newLogger(logOut, logLevel(verbose)))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(versionTemplate())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newServeCmd())

	return root
}

// Execute runs the textsynth CLI with ctx, logging to logOut.
func Execute(ctx context.Context, logOut io.Writer) error {
	return NewRootCommand(logOut).ExecuteContext(ctx)
}
