package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"filebin/internal/api"
	"filebin/internal/config"
)

func newSaveCmd(cfg *config.Config) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Save file content to the local filesystem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				record, err := client.GetFile(cmd.Context(), id)
				if err != nil {
					return err
				}

				dest := filepath.Join(outputDir, filepath.Base(record.Name))
				f, err := os.Create(dest)
				if err != nil {
					return err
				}
				defer f.Close()

				if err := client.Download(cmd.Context(), id, f); err != nil {
					os.Remove(dest)
					return err
				}
				return writePlain("saved %s\n", dest)
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "dir", "d", ".", "destination directory")

	return cmd
}
