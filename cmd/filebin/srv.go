package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"filebin/internal/blobstore"
	"filebin/internal/config"
	"filebin/internal/notify"
	"filebin/internal/server"
	"filebin/internal/store"
	"filebin/internal/vault"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	var noSweep bool

	cmd := &cobra.Command{
		Use:   "srv",
		Short: "Run the filebin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}
			if cfg.BlobRoot == "" {
				return fmt.Errorf("blob root is required")
			}

			retention, err := cfg.RetentionWindow()
			if err != nil {
				return err
			}
			interval, err := cfg.SweepEvery()
			if err != nil {
				return err
			}

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger := slog.Default().With("component", "server")

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := blobstore.NewLocal(cfg.BlobRoot)
			if err != nil {
				return err
			}

			version, err := st.SchemaVersion()
			if err != nil {
				return err
			}

			notifier := notify.New()
			service := vault.NewService(st, bs, notifier)
			sweeper := vault.NewSweeper(service, retention, interval, slog.Default().With("component", "sweeper"))

			srv := server.New(server.Options{
				Addr:    addr,
				Service: service,
				Sweeper: sweeper,
				Info: server.Info{
					DBPath:        cfg.DBPath,
					BlobRoot:      cfg.BlobRoot,
					SchemaVersion: version,
				},
				APITokenHash: cfg.APITokenHash,
				Logger:       logger,
			})

			group, ctx := errgroup.WithContext(cmd.Context())
			group.Go(srv.ListenAndServe)
			if !noSweep {
				group.Go(func() error {
					return sweeper.Run(ctx)
				})
			}
			return group.Wait()
		},
	}

	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "disable the periodic expiry sweep")

	return cmd
}
