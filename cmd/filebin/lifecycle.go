package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"filebin/internal/api"
	"filebin/internal/config"
)

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid file id %q", raw)
	}
	return id, nil
}

func newTrashCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return newTransitionCmd(cfg, jsonOutput, "trash", "Move a file to the recycle bin",
		func(client *api.Client, ctx context.Context, id int64) (api.FileResponse, error) {
			return client.Trash(ctx, id)
		})
}

func newRestoreCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return newTransitionCmd(cfg, jsonOutput, "restore", "Restore a file from the recycle bin",
		func(client *api.Client, ctx context.Context, id int64) (api.FileResponse, error) {
			return client.Restore(ctx, id)
		})
}

func newTransitionCmd(cfg *config.Config, jsonOutput *bool, use, short string, op func(*api.Client, context.Context, int64) (api.FileResponse, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> [<id>...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				results := make([]api.FileResponse, 0, len(args))
				for _, arg := range args {
					id, err := parseIDArg(arg)
					if err != nil {
						return err
					}
					resp, err := op(client, cmd.Context(), id)
					if err != nil {
						return err
					}
					results = append(results, resp)
				}
				if *jsonOutput {
					return writeJSON(results)
				}
				return writeFileList(results)
			})
		},
	}
}

func newPurgeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <id> [<id>...]",
		Short: "Permanently delete files and their content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				for _, arg := range args {
					id, err := parseIDArg(arg)
					if err != nil {
						return err
					}
					if err := client.Purge(cmd.Context(), id); err != nil {
						return err
					}
					if err := writePlain("purged %d\n", id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
