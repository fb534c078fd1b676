package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/sheet"
	"github.com/google/uuid"
)

type ReportServiceImpl struct {
	personnelRepo personnel.PersonnelRepository
	metrics       *metrics.ReportMetrics
	logger        *slog.Logger
	now           func() time.Time
}

func NewReportService(
	personnelRepo personnel.PersonnelRepository,
	reportMetrics *metrics.ReportMetrics,
	logger *slog.Logger,
) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		personnelRepo: personnelRepo,
		metrics:       reportMetrics,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *ReportServiceImpl) ListKinds(ctx context.Context) []report.KindResponse {
	kinds := report.Kinds()
	res := make([]report.KindResponse, 0, len(kinds))
	for _, k := range kinds {
		res = append(res, report.KindResponse{Kind: k, Name: k.DisplayName(), Filename: k.Filename()})
	}
	return res
}

func (s *ReportServiceImpl) ListDepartments(ctx context.Context) ([]report.DepartmentResponse, error) {
	departments, err := s.personnelRepo.ListActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	res := make([]report.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		res = append(res, report.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return res, nil
}

// GenerateReport loads the month's records for the requested departments and builds the statement.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, req report.GenerateReportRequest) (report.Report, error) {
	start := time.Now()
	runID, ok := report.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
	}
	logger := s.logger.With(
		slog.String("run_id", runID),
		slog.String("kind", string(req.Kind)),
		slog.Int("month", req.Month),
		slog.Int("year", req.Year),
	)

	if err := req.Validate(); err != nil {
		kind := string(req.Kind)
		if !req.Kind.Valid() {
			kind = "unknown"
		}
		s.metrics.ObserveBuild(kind, metrics.StatusInvalid, time.Since(start))
		return report.Report{}, err
	}

	res, err := s.generate(ctx, req)
	elapsed := time.Since(start)
	res.RunID = runID
	if err != nil {
		s.metrics.ObserveBuild(string(req.Kind), metrics.StatusError, elapsed)
		logger.Error("payroll statement build failed", slog.Any("error", err))
		return report.Report{}, err
	}

	if res.Empty {
		s.metrics.ObserveBuild(string(req.Kind), metrics.StatusEmpty, elapsed)
		logger.Warn("payroll statement has no employees",
			slog.Any("department_ids", req.DepartmentIDs),
		)
		return res, nil
	}

	s.metrics.ObserveBuild(string(req.Kind), metrics.StatusOK, elapsed)
	logger.Info("payroll statement built",
		slog.Int("rows", len(res.Rows)),
		slog.Duration("duration", elapsed),
	)
	return res, nil
}

func (s *ReportServiceImpl) generate(ctx context.Context, req report.GenerateReportRequest) (report.Report, error) {
	organization, err := s.personnelRepo.GetEstablishment(ctx)
	if err != nil && !errors.Is(err, personnel.ErrEstablishmentNotFound) {
		return report.Report{}, fmt.Errorf("failed to get establishment: %w", err)
	}

	records, err := s.personnelRepo.ListMonthRecords(ctx, req.Year, req.Month, req.DepartmentIDs)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load month records: %w", err)
	}

	return Build(BuildInput{
		Kind:             req.Kind,
		Year:             req.Year,
		Month:            req.Month,
		OrganizationName: organization.Name,
		DepartmentIDs:    req.DepartmentIDs,
		Records:          records,
		GeneratedAt:      s.now(),
	})
}

// ExportReport builds the statement and renders it as an xlsx workbook.
func (s *ReportServiceImpl) ExportReport(ctx context.Context, req report.GenerateReportRequest) (report.File, error) {
	res, err := s.GenerateReport(ctx, req)
	if err != nil {
		return report.File{}, err
	}

	content, err := sheet.Render(res)
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrExport, err)
	}

	return report.File{
		Filename:    req.Kind.Filename(),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}
