package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/it-logbook-api/internal/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{refData: true})
		if err != nil {
			return err
		}
		defer a.Close()

		router := handler.NewRouter(a.store, a.deptService, a.logger)
		server := &http.Server{
			Addr:         ":" + a.cfg.Server.Port,
			Handler:      router.Setup(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// The API answers 503 on writes until the initial load finishes.
		stopLoad := a.loadInBackground(cmd.Context())
		defer stopLoad()

		done := make(chan struct{})
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-quit
			a.logger.Info("server is shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				a.logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
			}
			close(done)
		}()

		a.logger.Info("server is starting", slog.String("port", a.cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("could not listen on port", slog.String("port", a.cfg.Server.Port), slog.Any("error", err))
			return err
		}

		<-done
		a.logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
