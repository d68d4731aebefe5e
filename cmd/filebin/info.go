package main

import (
	"github.com/spf13/cobra"

	"filebin/internal/api"
	"filebin/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server and catalog information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("db: %s\nblobs: %s\nschema: v%d\nactive: %d\ntrashed: %d\n",
					resp.DBPath, resp.BlobRoot, resp.SchemaVersion, resp.ActiveFiles, resp.TrashedFiles)
			})
		},
	}
}
