package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/config"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/repository/postgresql"
	reportService "github.com/cmlabs-hris/salarycalc-backend-go/internal/service/report"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "payroll-report",
		Short:        "Monthly payroll statement tools",
		SilenceUsage: true,
	}
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newDepartmentsCmd())
	cmd.AddCommand(newKindsCmd())
	return cmd
}

func execute() error {
	return newRootCmd().Execute()
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// openService wires the report service against the configured database.
// The returned func closes the pool.
func openService(ctx context.Context, logger *slog.Logger) (report.ReportService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	svc := reportService.NewReportService(postgresql.NewPersonnelRepository(db), metrics.NewReportMetrics(), logger)
	return svc, db.Close, nil
}
