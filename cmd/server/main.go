package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/vecdraw/internal/api"
	"github.com/inamate/vecdraw/internal/auth"
	"github.com/inamate/vecdraw/internal/collab"
	"github.com/inamate/vecdraw/internal/config"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/export"
	mw "github.com/inamate/vecdraw/internal/middleware"
	"github.com/inamate/vecdraw/internal/raster"
	"github.com/inamate/vecdraw/internal/store"
	"github.com/inamate/vecdraw/internal/typeid"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	scenes, err := store.Open(ctx, store.Options{
		Backend:     cfg.Store,
		DataDir:     cfg.DataDir,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("open %s scene store: %w", cfg.Store, err)
	}
	defer scenes.Close()

	authService := auth.NewService(cfg.JWTSecret)
	if !authService.Enabled() {
		slog.Warn("JWT secret not set, sessions are open to everyone")
	}

	hub := collab.NewHub(collab.Options{
		Store: scenes,
		Blink: cfg.BlinkPeriod(),
		Session: engine.Options{
			HitRadius: cfg.HitRadius,
			Style:     cfg.Style(),
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mw.CORS(cfg.Origins())(newRouter(cfg, scenes, authService, hub)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr, "store", cfg.Store)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		hub.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	hub.Stop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, scenes store.Store, authService *auth.Service, hub *collab.Hub) *mux.Router {
	sceneHandler := api.NewHandler(scenes)
	exportHandler := export.NewHandler(scenes, raster.Options{
		Width:    cfg.CanvasWidth,
		Height:   cfg.CanvasHeight,
		FontPath: cfg.FontPath,
	})

	r := mux.NewRouter()
	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Reads are public; writes need a token when auth is enabled
	r.HandleFunc("/api/scenes", sceneHandler.List).Methods("GET")
	r.HandleFunc("/api/scenes/{name}", sceneHandler.Get).Methods("GET")
	r.HandleFunc("/api/scenes/{name}/{format:png|tiff|bmp}", exportHandler.Image).Methods("GET")

	protected := r.PathPrefix("/api/scenes").Subrouter()
	protected.Use(authService.Middleware)
	protected.HandleFunc("/{name}", sceneHandler.Put).Methods("PUT")
	protected.HandleFunc("/{name}", sceneHandler.Delete).Methods("DELETE")

	origins := cfg.Origins()
	r.HandleFunc("/ws/session/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, origins)
	})
	return r
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, origins []string) {
	sessionID := mux.Vars(r)["sessionId"]
	if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	subject, err := websocketSubject(r, authSvc, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, subject, sessionID, clientID)
	if err := hub.Register(client); err != nil {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// websocketSubject names the user joining sessionID. Without auth every
// connection gets an anonymous name.
func websocketSubject(r *http.Request, authSvc *auth.Service, sessionID string) (string, error) {
	if !authSvc.Enabled() {
		return "anon-" + uuid.New().String()[:8], nil
	}
	token := auth.TokenFromRequest(r)
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return authSvc.Authorize(token, sessionID)
}
