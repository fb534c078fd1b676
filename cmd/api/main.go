package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/salarycalc-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/repository/postgresql"
	reportService "github.com/cmlabs-hris/salarycalc-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsDevelopment())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "salarycalc"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	personnelRepo := postgresql.NewPersonnelRepository(db)
	reportMetrics := metrics.NewReportMetrics()
	reportSvc := reportService.NewReportService(personnelRepo, reportMetrics, logger)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	if !JWTService.Enabled() {
		logger.Warn("JWT_SECRET_KEY is empty, report routes are not authenticated")
	}

	reportHandler := appHTTP.NewReportHandler(reportSvc)
	router := appHTTP.NewRouter(logger, cfg.App.CORSOrigins, JWTService, reportHandler, reportMetrics.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
