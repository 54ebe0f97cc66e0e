package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/qso"
	graphview "github.com/aretw0/qso/internal/presentation/graph"
	httpAdapter "github.com/aretw0/qso/pkg/adapters/http"
	"github.com/aretw0/qso/pkg/observability"
	"github.com/aretw0/qso/pkg/runner"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Follow a conversation fed over HTTP",
	Long: `Starts an HTTP server. Decoders POST messages to /messages and POST /close when
the conversation is over; /status, /graph and /metrics report on it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		logger := newLogger(cfg)

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)

		eng, err := newEngine(cfg, logger, qso.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			return err
		}

		id := uuid.NewString()
		queue := httpAdapter.NewQueue(cfg.Server.QueueSize)
		tracker := httpAdapter.NewTracker(id, eng.CurrentPhase())

		server := &httpAdapter.Server{
			Queue:   queue,
			Tracker: tracker,
			Graph:   graphview.GenerateMermaid(graphview.NewView(eng.Graph(), eng.Table()), nil),
			Logger:  logger,
		}
		if cfg.Server.Metrics {
			server.Gatherer = reg
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           httpAdapter.NewHandler(server),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting qso server", "addr", ln.Addr().String(), "protocol", eng.Protocol().Name, "conversation", id)
			serverErrors <- srv.Serve(ln)
		}()

		go func() {
			res, err := eng.Run(ctx, queue,
				runner.WithConversationID(id),
				runner.WithHandler(tracker),
				runner.WithStopOnTerminal(cfg.StopOnTerminal),
				runner.WithAbortOnThreshold(cfg.AbortOnThreshold),
			)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Error("conversation failed", "err", err)
				}
				return
			}
			logger.Info("conversation ended", "outcome", res.Outcome, "phase", res.Phase, "messages", res.Messages)
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		queue.Close()

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().Bool("stop-on-terminal", false, "Stop consuming once the conversation is finished")
	serveCmd.Flags().Bool("abort-on-threshold", false, "Stop on the first failure-threshold event")
}
