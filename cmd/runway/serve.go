package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/runway/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings.Server
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				settings.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := server.NewRouter(server.NewHandler(a.engine()))
			log.WithFields(log.Fields{
				"read_timeout":  settings.ReadTimeout,
				"write_timeout": settings.WriteTimeout,
			}).Debug("server settings")
			return server.New(settings, router).ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address; overrides server.addr")
	return cmd
}
