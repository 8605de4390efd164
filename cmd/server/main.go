package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/notaryflow-backend/internal/adapter/grpc"
	"github.com/simaogato/notaryflow-backend/internal/adapter/httpapi"
	"github.com/simaogato/notaryflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/notaryflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/notaryflow-backend/internal/config"
	"github.com/simaogato/notaryflow-backend/internal/domain"
	"github.com/simaogato/notaryflow-backend/internal/platform/logger"
	"github.com/simaogato/notaryflow-backend/internal/platform/metrics"
	"github.com/simaogato/notaryflow-backend/internal/usecase/closing"
	"github.com/simaogato/notaryflow-backend/internal/usecase/seeder"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogLevel, os.Stdout)
	m := metrics.New(prometheus.DefaultRegisterer)
	ctx := context.Background()

	// 2. Initialize the lead-time repository
	leadTimeRepo, closeRepo, err := openLeadTimeRepository(ctx, cfg.DBConnStr, log)
	if err != nil {
		log.Error("failed to initialize lead-time repository", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	// Seed the built-in lead-time tables
	seeded, err := seeder.NewLeadTimeSeeder(leadTimeRepo, domain.DefaultLeadTimeTable()).Seed(ctx)
	if err != nil {
		log.Error("failed to seed lead times", "error", err)
		os.Exit(1)
	}
	log.Info("lead times seeded", "jurisdictions", seeded)

	// 3. Initialize the closing service
	closingService := closing.NewClosingService(leadTimeRepo, closing.Settings{
		Regime:           cfg.TaxRegime(),
		SafetyBufferDays: cfg.SafetyBufferDays,
		DefaultLeadDays:  cfg.DefaultLeadDays,
		LeadTimeCacheTTL: cfg.LeadTimeCacheTTL,
	}, m, log)

	// 4. Start gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.RequestIDInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	grpcadapter.RegisterNotaryServiceServer(grpcServer, grpcadapter.NewServer(closingService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Error("failed to listen", "addr", cfg.GRPCAddr, "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("gRPC server stopped with error", "error", err)
			os.Exit(1)
		}
	}()

	// 5. Start HTTP server for health and metrics
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(closingService, prometheus.DefaultGatherer, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped with error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, httpServer, log)
}

// openLeadTimeRepository connects to Postgres when a connection string is set,
// and falls back to the in-memory repository otherwise.
func openLeadTimeRepository(ctx context.Context, connStr string, log *slog.Logger) (domain.LeadTimeRepository, func(), error) {
	if connStr == "" {
		log.Info("DB_CONN_STR not set, using in-memory lead-time repository")
		return memory.NewLeadTimeRepository(), func() {}, nil
	}

	db, err := postgres.NewDB(connStr)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}
	return postgres.NewLeadTimeRepository(db), closeDB, nil
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(grpcServer *grpclib.Server, httpServer *http.Server, log *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("received signal, shutting down gracefully", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}

	grpcServer.GracefulStop()
	log.Info("servers stopped")
}
