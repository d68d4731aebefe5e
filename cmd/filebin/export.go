package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"filebin/internal/api"
	"filebin/internal/config"
)

type exportManifest struct {
	ExportedAt time.Time          `yaml:"exported_at"`
	Active     []api.FileResponse `yaml:"active"`
	Trashed    []api.FileResponse `yaml:"trashed"`
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a YAML manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				active, err := client.ListFiles(cmd.Context(), "active")
				if err != nil {
					return err
				}
				trashed, err := client.ListFiles(cmd.Context(), "trashed")
				if err != nil {
					return err
				}

				manifest := exportManifest{
					ExportedAt: time.Now().UTC(),
					Active:     active,
					Trashed:    trashed,
				}

				w := os.Stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}

				enc := yaml.NewEncoder(w)
				defer enc.Close()
				return enc.Encode(manifest)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}
