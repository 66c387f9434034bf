package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recipebox/handlers"
	"recipebox/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recipe API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := current.cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		h := &handlers.Recipes{
			Store: current.store,
			IDs:   current.ids,
			Log:   logger.Logger,
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           handlers.NewHandler(h, current.cfg.Server.AllowedOrigins, logger.HttpLogger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Logger.Info().Str("addr", addr).Msg("Server starting")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Logger.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
