package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/textsynth/internal/server"
)

// newServeCmd creates the serve command, which runs the MCP tool server on
// stdin and stdout. Logs keep going to the CLI's log writer.
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the synthesis engine as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			server.Version = Version
			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("Serving MCP tools on stdio")
			return srv.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (TOML); defaults need no corpus")

	return cmd
}
