package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/runlog"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline outputs over HTTP for the dashboard",
	Long: `Exposes the persisted pipeline outputs as a small read-only data API.
The dashboard frontend consumes these endpoints; the pipeline itself never
depends on the server running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := runlog.Open(ctx, cfg.Store)
		if err != nil {
			zap.L().Warn("run ledger unavailable, /api/runs disabled", zap.Error(err))
			store = nil
		} else {
			defer store.Close() //nolint:errcheck
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
		}))

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		r.Get("/api/combined", serveFile(cfg.Paths.CombinedCSV, "text/csv"))
		r.Get("/api/cross-platform", serveFile(cfg.Paths.CrossPlatformCSV, "text/csv"))
		r.Get("/api/insights", serveFile(cfg.Paths.InsightsJSON, "application/json"))
		r.Get("/api/report", serveFile(cfg.Paths.InsightsReportMD, "text/markdown"))
		r.Get("/api/d2c", serveFile(cfg.Paths.D2CCleanedCSV, "text/csv"))
		r.Get("/api/d2c/insights", serveFile(cfg.Paths.D2CInsightsJSON, "application/json"))

		r.Get("/api/runs", func(w http.ResponseWriter, req *http.Request) {
			if store == nil {
				http.Error(w, `{"error":"run ledger unavailable"}`, http.StatusServiceUnavailable)
				return
			}
			runs, err := store.List(req.Context(), 100)
			if err != nil {
				zap.L().Error("list runs", zap.Error(err))
				http.Error(w, `{"error":"list runs failed"}`, http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(runs)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// serveFile returns a handler for one persisted output file. A missing
// file means the producing phase has not run yet.
func serveFile(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(path)
		if err != nil {
			http.Error(w, `{"error":"output not available, run the producing phase first"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
