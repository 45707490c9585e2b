package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rendis/flowdeck/internal/document"
	"github.com/rendis/flowdeck/internal/evaluation"
	"github.com/rendis/flowdeck/internal/logging"
	"github.com/rendis/flowdeck/internal/mutation"
	"github.com/rendis/flowdeck/internal/panel"
	"github.com/rendis/flowdeck/internal/render"
	"github.com/rendis/flowdeck/internal/transport"
	"github.com/rendis/flowdeck/internal/view"
)

func main() {
	cfg := loadConfig()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	client := transport.New(cfg.ServerURL, transport.WithLogger(logger))
	fetcher := document.NewFetcher(client)
	refresher := view.NewDocumentView(fetcher, nil, logger)
	pipeline := mutation.NewPipeline(fetcher, client, refresher, confirmStdin, logger)
	evaluations := evaluation.NewManager(client, fetcher, confirmStdin, logger)

	srv := panel.NewServer(panel.Deps{
		Fetcher:     fetcher,
		Pipeline:    pipeline,
		Evaluations: evaluations,
		Renderer:    render.NewReportRenderer(nil),
		Logger:      logger,
	})

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		httpSrv.Shutdown(context.Background())
	}()

	logger.Info("flowdeck panel listening", "addr", cfg.ListenAddr, "server_url", cfg.ServerURL)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger: text output with correlation IDs
// injected from the request context.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(logging.NewCorrelationHandler(inner))
}

// confirmStdin asks for confirmation on the terminal. Anything other than
// an explicit yes declines.
func confirmStdin(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
