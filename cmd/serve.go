package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/render"
)

var (
	servePort  int
	serveInput string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rendered maps and zone aggregates for local preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		input := serveInput
		if input == "" {
			input = cfg.Render.Input
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           buildRouter(cfg.Server.MapDir, input),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			if err := shutdown(srv, shutdownTimeout); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("map_dir", cfg.Server.MapDir),
			zap.String("input", input),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// shutdown drains srv on a fresh context; the signal context that triggers
// it is already cancelled.
func shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildRouter wires the preview endpoints. mapDir holds rendered HTML maps;
// csvPath is the Output Table the zone endpoint reads on each request.
func buildRouter(mapDir, csvPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, "application/json", map[string]string{"status": "ok"})
	})

	r.Get("/maps/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		if name != filepath.Base(name) || !strings.EqualFold(filepath.Ext(name), ".html") {
			http.NotFound(w, req)
			return
		}
		path := filepath.Join(mapDir, name)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, req, path)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))

		r.Get("/zones", func(w http.ResponseWriter, req *http.Request) {
			sheet, err := export.ReadCSV(csvPath)
			if err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, fs.ErrNotExist) {
					status = http.StatusNotFound
				}
				zap.L().Error("serve: read output table", zap.String("path", csvPath), zap.Error(err))
				writeJSON(w, status, "application/json", map[string]string{"error": "output table unavailable"})
				return
			}

			aggs, err := render.ZoneAggregates(sheet)
			if err != nil {
				zap.L().Error("serve: zone aggregates", zap.String("path", csvPath), zap.Error(err))
				writeJSON(w, http.StatusUnprocessableEntity, "application/json", map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, "application/geo+json", render.ZoneFeatures(aggs))
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("serve: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveInput, "input", "", "Output Table CSV for /api/zones (default from config)")
	rootCmd.AddCommand(serveCmd)
}
