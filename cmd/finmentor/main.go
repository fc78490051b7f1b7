package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/tinoosan/finmentor/internal/config"
	"github.com/tinoosan/finmentor/internal/httpapi"
	v1 "github.com/tinoosan/finmentor/internal/httpapi/v1"
	"github.com/tinoosan/finmentor/internal/mint"
	"github.com/tinoosan/finmentor/internal/storage/memory"
)

func main() {
	if err := run(); err != nil {
		slog.Error("finmentor exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, pretty := buildLogger(cfg.Log)
	slog.SetDefault(logger)

	if cfg.Server.CPUCores > 0 {
		runtime.GOMAXPROCS(cfg.Server.CPUCores)
	}

	store := memory.New()
	store.Seed()
	logger.Info("storage backend: memory (seeded)")

	opts := httpapi.Options{
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
	}
	if pretty {
		opts.PrettyLog = os.Stdout
		opts.Color = isatty.IsTerminal(os.Stdout.Fd())
	}
	root := httpapi.New(opts, logger, store)
	root.Mount("/api/v1", v1.New(store, mint.NewStub(), logger).Handler())

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return err
	}
	if n := cfg.Server.MaxConnections(); n > 0 {
		ln = netutil.LimitListener(ln, n)
	}

	srv := &http.Server{
		Handler:           root.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("finmentor listening", "addr", ln.Addr().String(), "env", cfg.Env, "gomaxprocs", runtime.GOMAXPROCS(0))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return root.Limiter().Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildLogger returns the process logger and whether the box report should
// also be written. pretty keeps a text handler for the structured stream.
func buildLogger(c config.Log) (*slog.Logger, bool) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.Level)}
	var out io.Writer = os.Stdout
	switch c.Format {
	case "text":
		return slog.New(slog.NewTextHandler(out, opts)), false
	case "pretty":
		return slog.New(slog.NewTextHandler(out, opts)), true
	default:
		return slog.New(slog.NewJSONHandler(out, opts)), false
	}
}
