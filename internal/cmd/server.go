package cmd

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/justinas/nosurf"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PauloHFS/blogum/internal/config"
	"github.com/PauloHFS/blogum/internal/db"
	"github.com/PauloHFS/blogum/internal/logging"
	"github.com/PauloHFS/blogum/internal/middleware"
	"github.com/PauloHFS/blogum/internal/routes"
	"github.com/PauloHFS/blogum/internal/view"
	"github.com/PauloHFS/blogum/internal/web"
)

func RunServer(assetsFS embed.FS) {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logging.Init()
	logger := logging.Get()

	dbConn, err := openDB(cfg)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		panic(err)
	}
	defer dbConn.Close()

	// Diretório de uploads de imagem de post
	if err := os.MkdirAll(filepath.Join(cfg.StorageDir, "images"), 0755); err != nil {
		logger.Error("failed to create storage directories", "error", err)
		panic(err)
	}

	queries := db.New(dbConn)

	if err := db.RunMigrations(context.Background(), dbConn); err != nil {
		logger.Error("failed to run migrations", "error", err)
		panic(err)
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(dbConn)

	mux := http.NewServeMux()
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))
	mux.Handle("GET /storage/", http.StripPrefix("/storage/", http.FileServer(http.Dir(cfg.StorageDir))))
	mux.Handle("GET "+routes.Metrics, promhttp.Handler())

	mux.HandleFunc("GET "+routes.Health, func(w http.ResponseWriter, r *http.Request) {
		if err := dbConn.PingContext(r.Context()); err != nil {
			logger.Error("health check failed: db unreachable", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		var stat syscall.Statfs_t
		wd, _ := os.Getwd()
		if err := syscall.Statfs(wd, &stat); err == nil {
			freeSpace := stat.Bavail * uint64(stat.Bsize)
			if freeSpace < 100*1024*1024 { // Menos de 100MB
				logger.Error("health check failed: low disk space", "free_bytes", freeSpace)
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprintf(w, "Low disk space")
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Rota não registrada cai na página 404 customizada.
	mux.HandleFunc("/", view.NotFound)

	// Registrar handlers de negócio
	web.RegisterRoutes(mux, web.HandlerDeps{
		DB:             dbConn,
		Queries:        queries,
		SessionManager: sessionManager,
		Config:         cfg,
	})

	// InjectCSRF fica DENTRO do nosurf: o token só existe no contexto depois
	// que o handler do nosurf rodou.
	csrfHandler := nosurf.New(middleware.InjectCSRF(mux))
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   cfg.Env == "prod",
	})
	// Falha de CSRF tem página própria com status 403.
	csrfHandler.SetFailureHandler(http.HandlerFunc(view.CSRFFailure))

	handler := middleware.Recovery(
		middleware.RateLimit(
			middleware.SecurityHeaders(cfg.Env == "prod")(
				middleware.Logger(
					sessionManager.LoadAndSave(csrfHandler),
				),
			),
		),
	)

	compressedHandler := gzhttp.GzipHandler(handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: compressedHandler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("server stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited properly")
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	// Hardening para produção: WAL, busy timeout e foreign keys ligados —
	// o cascade de comentários depende de _foreign_keys=on.
	dsn := cfg.DatabaseURL
	if strings.Contains(dsn, "?") {
		dsn += "&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on&_loc=UTC"
	} else {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on&_loc=UTC"
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := config.GetSQLiteConfig().ApplyPragmas(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
