package report

import "context"

// ReportService builds payroll statements for one month and a set of departments.
type ReportService interface {
	ListKinds(ctx context.Context) []KindResponse
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	GenerateReport(ctx context.Context, req GenerateReportRequest) (Report, error)
	ExportReport(ctx context.Context, req GenerateReportRequest) (File, error)
}
