package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sitecms "github.com/ift-institute/ift-site"
)

func main() {
	cfg := sitecms.DefaultConfig()

	addr := flag.String("addr", envOr("IFT_SITE_ADDR", cfg.HTTP.Addr), "listen address")
	dsn := flag.String("store-dsn", envOr("IFT_SITE_STORE_DSN", ""), "sqlite DSN for the remote content table (empty disables the remote store)")
	snapshot := flag.String("snapshot", envOr("IFT_SITE_SNAPSHOT", cfg.Fallback.SnapshotPath), "local content snapshot path")
	adminEmail := flag.String("admin-email", envOr("IFT_SITE_ADMIN_EMAIL", ""), "email accepted by the local authenticator")
	logLevel := flag.String("log-level", envOr("IFT_SITE_LOG_LEVEL", cfg.Logging.Level), "log level")
	logFormat := flag.String("log-format", envOr("IFT_SITE_LOG_FORMAT", cfg.Logging.Format), "log format (json, console, pretty)")
	mergeEmpty := flag.Bool("merge-empty-remote", false, "keep the local snapshot when the remote store is empty")
	flag.Parse()

	cfg.HTTP.Addr = *addr
	cfg.Fallback.SnapshotPath = *snapshot
	cfg.Auth.AdminEmail = *adminEmail
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	if *dsn != "" {
		cfg.Store.Enabled = true
		cfg.Store.DSN = *dsn
	}
	if *mergeEmpty {
		cfg.Content.EmptyRemotePolicy = sitecms.EmptyRemoteMerge
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module, err := sitecms.New(ctx, cfg)
	if err != nil {
		log.Fatalf("initialise site: %v", err)
	}
	module.Load(ctx)

	server := &http.Server{
		Addr:              module.Addr(),
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := module.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
