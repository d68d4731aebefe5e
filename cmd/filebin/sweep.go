package main

import (
	"github.com/spf13/cobra"

	"filebin/internal/api"
	"filebin/internal/config"
)

func newSweepCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Purge trashed files older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Sweep(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("scanned %d, purged %d, failed %d\n", resp.Scanned, resp.Purged, resp.Failed)
			})
		},
	}
}
