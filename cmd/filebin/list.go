package main

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"filebin/internal/api"
	"filebin/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		trashed bool
		filter  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var nameGlob glob.Glob
			if filter != "" {
				compiled, err := glob.Compile(filter)
				if err != nil {
					return fmt.Errorf("invalid --filter pattern: %w", err)
				}
				nameGlob = compiled
			}

			return withClient(cfg, func(client *api.Client) error {
				state := ""
				if trashed {
					state = "trashed"
				}
				resp, err := client.ListFiles(cmd.Context(), state)
				if err != nil {
					return err
				}

				if nameGlob != nil {
					filtered := make([]api.FileResponse, 0, len(resp))
					for _, file := range resp {
						if nameGlob.Match(file.Name) {
							filtered = append(filtered, file)
						}
					}
					resp = filtered
				}

				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeFileList(resp)
			})
		},
	}

	cmd.Flags().BoolVar(&trashed, "trashed", false, "list trashed files instead of active ones")
	cmd.Flags().StringVar(&filter, "filter", "", "glob pattern matched against file names")

	return cmd
}
