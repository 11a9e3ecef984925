// Package cli wires the openfang-migrate commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wipal/openfang/internal/logging"
)

var (
	logLevel string

	// initialized in PersistentPreRunE
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openfang-migrate",
		Short: "Migrate an OpenClaw installation to OpenFang",
		Long: "openfang-migrate converts OpenClaw state (config, agents, channels, memory,\n" +
			"sessions, workspaces) into the OpenFang Agent OS layout.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
