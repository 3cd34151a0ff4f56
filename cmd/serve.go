package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/interntrack/interntrack/internal/api"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = os.Getenv("INTERNTRACK_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8080"
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc, cfg := newService(cmd, st)

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewServer(svc, api.Options{LLMTimeout: cfg.Timeout}).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			slog.Info("listening", "addr", addr, "provider", cfg.Provider)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			slog.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides INTERNTRACK_ADDR, default 127.0.0.1:8080)")
}
