package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"filebin/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "filebin",
		Short: "Filebin is a local-first file keeper with a recycle bin",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newImportCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newTrashCmd(cfg, &jsonOutput),
		newRestoreCmd(cfg, &jsonOutput),
		newPurgeCmd(cfg),
		newSaveCmd(cfg),
		newSweepCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newInfoCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
		newTokenCmd(),
	)

	return cmd
}
