// Package hpath builds the hpath command line interface. The CLI is a
// thin application layer over pkg/fsops; the library itself has no
// dependency on it.
package hpath

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pranaysashank/hpath/internal/version"
	"github.com/pranaysashank/hpath/pkg/config"
	"github.com/pranaysashank/hpath/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	cfg, err := config.Load()
	if err != nil {
		// fall back to built-in defaults; the error is logged once the
		// logger exists
		defaults := config.Default()
		cfg = &defaults
	}

	rootCmd := &cobra.Command{
		Use:   "hpath",
		Short: "Path-safe filesystem operations",
		Long: `hpath copies, moves and deletes files, directories and symbolic links
with explicit control over overwrite behavior and failure aggregation
during recursive operations.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbosity == 0 {
				verbosity = cfg.Verbosity
			}
			logging.SetupLogger(verbosity)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to load configuration, using defaults")
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newCopyCmd(cfg))
	rootCmd.AddCommand(newMoveCmd(cfg))
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newMkdirCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newTypeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
