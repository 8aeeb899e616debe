package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	auditstore "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/catalog"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/sessions"
	"github.com/mrlokans/locallibrary/internal/views"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// NewApp wires the catalog stores, audit trail, sessions and security
// middleware around db and returns the ready router.
func NewApp(cfg *config.Config, db *database.Database, version string) (*gin.Engine, error) {
	repo := catalog.NewRepository(db.DB)
	auditService := audit.NewService(auditstore.NewRepository(db.DB))

	templates, err := views.Load(cfg.UI.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Authors:       repo,
		Genres:        repo,
		Books:         repo,
		Instances:     repo,
		Counter:       repo,
		Audit:         auditService,
		Database:      db,
		Version:       version,
		Templates:     templates,
		StaticPath:    cfg.UI.StaticPath,
		CSRFSecret:    csrfSecret(cfg.Security.CSRFSecret),
		SecureCookies: cfg.Security.SecureCookies,
		ReadOnly:      cfg.Global.ReadOnly,
	}

	if cfg.Sessions.Enabled {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		manager, err := sessions.NewManager(sqlDB, db.Dialect(), cfg.Sessions.Lifetime, cfg.Security.SecureCookies)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session manager: %w", err)
		}
		routerCfg.Sessions = manager.LoadSave()
		routerCfg.Flasher = manager
	} else {
		log.Printf("Sessions disabled: flash messages will not be shown")
	}

	if routerCfg.CSRFSecret == nil {
		log.Printf("WARNING: CSRF_SECRET is not set, form submissions are not CSRF protected")
	}
	if cfg.Global.ReadOnly {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	return http_controllers.NewRouter(routerCfg), nil
}

// csrfSecret decodes a hex secret, falling back to the raw bytes.
func csrfSecret(value string) []byte {
	if value == "" {
		return nil
	}
	secret, err := hex.DecodeString(value)
	if err != nil {
		return []byte(value)
	}
	return secret
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Local Library v%s", version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router, err := NewApp(cfg, db, version)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to build application: %v", err)
	}

	Serve(router, cfg, func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	})
}
