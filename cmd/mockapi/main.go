package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moola/internal/app"
	"moola/internal/config"
	"moola/internal/mockapi"
)

type seedFlag []string

func (s *seedFlag) String() string     { return strings.Join(*s, ",") }
func (s *seedFlag) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var seeds seedFlag
	addr := flag.String("addr", "", "listen address (overrides mock.addr)")
	flag.Var(&seeds, "seed", "seed a user as user:password (repeatable)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger, err := app.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("build logger", "error", err)
		os.Exit(1)
	}
	if *addr == "" {
		*addr = cfg.Mock.Addr
	}

	srv, err := mockapi.New(mockapi.Config{
		Secret:    []byte(cfg.Mock.JWTSecret),
		AccessTTL: cfg.Mock.AccessTTL,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}
	for _, s := range seeds {
		user, pass, ok := strings.Cut(s, ":")
		if !ok {
			logger.Error("bad -seed value, want user:password", "value", s)
			os.Exit(1)
		}
		if err := srv.AddUser(user, pass); err != nil {
			logger.Error("seed user", "user", user, "error", err)
			os.Exit(1)
		}
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("mock api listening", "addr", *addr, "access_ttl", cfg.Mock.AccessTTL.String())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
