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

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/psidex/graphedit/internal/rpc"
	"github.com/psidex/graphedit/internal/session"
	"github.com/psidex/graphedit/internal/webserver"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(a *app) *cobra.Command {
	var (
		address string
		grpcOn  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor page and websocket, and optionally the gRPC API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.HTTP.Address = address
			}
			if cmd.Flags().Changed("grpc") {
				a.cfg.GRPC.Enabled = grpcOn
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVarP(&address, "address", "b", "", "the ip:port to bind the webserver to")
	cmd.Flags().BoolVar(&grpcOn, "grpc", false, "also serve the gRPC session API")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	// Bind every listener before serving so a bad address fails fast without
	// leaving the other server running.
	var grpcLis net.Listener
	if cfg.GRPC.Enabled {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", cfg.GRPC.Address, err)
		}
		grpcLis = lis
	}
	httpLis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		if grpcLis != nil {
			_ = grpcLis.Close()
		}
		return fmt.Errorf("listening on %s: %w", cfg.HTTP.Address, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, 2)

	web := webserver.NewServer(a.logger, webserver.Config{
		Seed:         cfg.Seed.Elements,
		PingInterval: cfg.HTTP.PingInterval.Duration,
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration,
	})
	httpServer := &http.Server{
		Handler:           web.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		a.logger.Info("Starting webserver", "address", httpLis.Addr().String())
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("webserver: %w", err)
		}
	}()

	var grpcServer *grpc.Server
	if grpcLis != nil {
		registry := session.NewRegistry(cfg.Seed.Elements, a.logger)
		go registry.Reap(ctx, cfg.GRPC.IdleTimeout.Duration)

		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(a.logger)))
		rpc.Register(grpcServer, rpc.NewServer(a.logger, registry))
		go func() {
			a.logger.Info("Starting gRPC server", "address", grpcLis.Addr().String())
			if err := grpcServer.Serve(grpcLis); err != nil {
				errs <- fmt.Errorf("gRPC server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down")
	case runErr = <-errs:
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
