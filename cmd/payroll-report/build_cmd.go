package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/sheet"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type buildOutput struct {
	Command    string `json:"command"`
	RunID      string `json:"run_id"`
	Kind       string `json:"kind"`
	Rows       int    `json:"rows"`
	Empty      bool   `json:"empty"`
	Output     string `json:"output"`
	DurationMS int64  `json:"duration_ms"`
}

func newBuildCmd() *cobra.Command {
	var (
		kind          string
		monthYear     string
		departmentIDs []string
		out           string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a payroll statement workbook for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := report.ParseKind(kind)
			if err != nil {
				return err
			}
			req, err := report.NewMonthYearRequest(k, monthYear, departmentIDs)
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if out == "" {
				out = k.Filename()
			}

			logger := newLogger()
			runID := uuid.NewString()

			svc, closeDB, err := openService(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer closeDB()

			start := time.Now()
			res, err := svc.GenerateReport(report.WithRunID(cmd.Context(), runID), req)
			if err != nil {
				return err
			}
			if err := writeWorkbook(out, res); err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), buildOutput{
				Command:    "build",
				RunID:      res.RunID,
				Kind:       string(k),
				Rows:       len(res.Rows),
				Empty:      res.Empty,
				Output:     out,
				DurationMS: time.Since(start).Milliseconds(),
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(report.KindSummary), "Statement kind: summary, bonus, sick, vacation")
	cmd.Flags().StringVar(&monthYear, "month-year", time.Now().Format("01/2006"), "Period as MM/YYYY")
	cmd.Flags().StringArrayVar(&departmentIDs, "department", nil, "Department id, repeatable (required)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default <kind>.xlsx)")
	_ = cmd.MarkFlagRequired("department")
	return cmd
}

func writeWorkbook(path string, r report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := sheet.Write(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
