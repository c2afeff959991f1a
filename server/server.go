package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackbase/config"
	"trackbase/core/ingest"
	"trackbase/db"
	"trackbase/logger"
	"trackbase/repository"
	"trackbase/server/console"
	"trackbase/storage"

	"github.com/gorilla/mux"
)

// Start initializes dependencies and runs the HTTP server until interrupted.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogOutputPath,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
	})

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()

	if err := storage.InitMinio(cfg); err != nil {
		logger.Fatal("Failed to initialize MinIO", logger.ErrorField(err))
	}

	hub := console.NewHub()
	defer hub.Close()
	cons := NewConsole(hub)

	trackRepo := repository.NewMySQLTrackRepository()
	listRepo := repository.NewGormTrackListRepository(db.GormDB)
	userRepo := repository.NewMySQLUserRepository(db.DB)

	apiHandler := NewAPIHandler(trackRepo, listRepo, userRepo, cons, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IngestDir != "" {
		watcher := ingest.NewWatcher(cfg.IngestDir, apiHandler, cons, nil)
		go func() {
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Ingest watcher stopped", logger.ErrorField(err))
			}
		}()
	}

	router := newRouter(apiHandler, hub)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", logger.ErrorField(err))
	}
}

// newRouter wires all routes.
func newRouter(h *APIHandler, hub *console.Hub) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	api := router.PathPrefix("/api").Subrouter()

	// Public endpoints.
	api.HandleFunc("/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.LoginHandler).Methods(http.MethodPost)
	api.HandleFunc("/tracks", h.ListTracksHandler).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}", h.GetTrackHandler).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}/sidecar", h.DownloadSidecarHandler).Methods(http.MethodGet)
	api.HandleFunc("/lists/{id}", h.GetListHandler).Methods(http.MethodGet)

	// Diagnostics console.
	router.HandleFunc("/ws/console", hub.ServeWS)

	// Authenticated endpoints.
	api.HandleFunc("/tracks", h.requireAuth(h.CreateTrackHandler)).Methods(http.MethodPost)
	api.HandleFunc("/tracks/{id:[0-9]+}", h.requireAuth(h.DeleteTrackHandler)).Methods(http.MethodDelete)
	api.HandleFunc("/tracks/{id:[0-9]+}/language", h.requireAuth(h.UpdateLanguageHandler)).Methods(http.MethodPatch)
	api.HandleFunc("/tracks/{id:[0-9]+}/kind", h.requireAuth(h.UpdateKindHandler)).Methods(http.MethodPatch)
	api.HandleFunc("/tracks/{id:[0-9]+}/label", h.requireAuth(h.UpdateLabelHandler)).Methods(http.MethodPatch)
	api.HandleFunc("/tracks/{id:[0-9]+}/sidecar", h.requireAuth(h.UploadSidecarHandler)).Methods(http.MethodPost)
	api.HandleFunc("/lists", h.requireAuth(h.CreateListHandler)).Methods(http.MethodPost)
	api.HandleFunc("/lists", h.requireAuth(h.GetListsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/lists/{id}", h.requireAuth(h.DeleteListHandler)).Methods(http.MethodDelete)
	api.HandleFunc("/lists/{id}/tracks", h.requireAuth(h.AddTrackToListHandler)).Methods(http.MethodPost)
	api.HandleFunc("/lists/{id}/tracks/{trackId:[0-9]+}", h.requireAuth(h.RemoveTrackFromListHandler)).Methods(http.MethodDelete)

	return router
}

// corsMiddleware allows browser clients from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
