package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-poll/cliparse"
	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/logging"
	"github.com/danielhkuo/quickly-poll/router"
	"github.com/danielhkuo/quickly-poll/store"
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", logging.Err(err))
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", logging.Err(err))
		os.Exit(1)
	}

	log := logging.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	backend, err := openBackend(cfg)
	if err != nil {
		log.Error("storage setup failed", "database_type", cfg.DatabaseType, logging.Err(err))
		os.Exit(1)
	}

	s := store.New(backend, store.WithStrictVotes(cfg.StrictVotes))
	defer s.Close()

	server := http.Server{
		Handler:      router.NewRouter(s, log),
		Addr:         ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", logging.Err(err))
		}
	}()

	log.Info("Listening",
		"port", cfg.Port,
		"env", cfg.Env,
		"database_type", cfg.DatabaseType,
		"strict_votes", cfg.StrictVotes,
	)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server closed", logging.Err(err))
		return
	}
	log.Info("Server closed")
}

func openBackend(cfg cliparse.Config) (store.Backend, error) {
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		return store.NewMemoryBackend(), nil
	}

	d, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	conn, err := db.Open(d, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(conn, d); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "dialect", string(d))

	return store.NewSQLBackend(conn, d), nil
}
