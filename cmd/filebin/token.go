package main

import (
	"github.com/spf13/cobra"

	"filebin/internal/auth"
	"filebin/internal/config"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the API token",
	}

	cmd.AddCommand(newTokenGenerateCmd())
	return cmd
}

func newTokenGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate an API token and store its hash in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.GenerateToken()
			if err != nil {
				return err
			}
			hash, err := auth.HashToken(token)
			if err != nil {
				return err
			}

			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.SetKey(path, "api_token_hash", hash); err != nil {
				return err
			}

			// The plaintext token is shown once and never stored.
			if err := writePlain("%s\n", token); err != nil {
				return err
			}
			return writePlain("export FILEBIN_API_TOKEN=%s\n", token)
		},
	}
}
