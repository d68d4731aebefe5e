package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"filebin/internal/api"
	"filebin/internal/config"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "import <path> [<path>...]",
		Short: "Import files into the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mediaType != "" && len(args) > 1 {
				return fmt.Errorf("--media-type applies to a single file")
			}
			return withClient(cfg, func(client *api.Client) error {
				imported := make([]api.FileResponse, 0, len(args))
				for _, path := range args {
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					resp, err := client.Upload(cmd.Context(), filepath.Base(path), mediaType, f)
					f.Close()
					if err != nil {
						return fmt.Errorf("import %s: %w", path, err)
					}
					imported = append(imported, resp)
				}

				if *jsonOutput {
					return writeJSON(imported)
				}
				return writeFileList(imported)
			})
		},
	}

	cmd.Flags().StringVar(&mediaType, "media-type", "", "declared media type (sniffed when omitted)")

	return cmd
}
