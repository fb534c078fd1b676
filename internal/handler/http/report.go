package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// ListKinds handles GET /reports
	ListKinds(w http.ResponseWriter, r *http.Request)

	// ListDepartments handles GET /reports/departments
	ListDepartments(w http.ResponseWriter, r *http.Request)

	// GetReport handles GET /reports/{kind}
	GetReport(w http.ResponseWriter, r *http.Request)

	// ExportReport handles GET /reports/{kind}/xlsx
	ExportReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) ListKinds(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.reportService.ListKinds(r.Context()))
}

func (h *reportHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.reportService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, departments, &response.Meta{TotalItems: int64(len(departments))})
}

func (h *reportHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		TotalItems: int64(len(result.Rows)),
		RequestID:  result.RunID,
	})
}

func (h *reportHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.ExportReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

// parseRequest reads the kind from the path and the period from either
// month_year=MM/YYYY or separate month and year parameters.
func (h *reportHandlerImpl) parseRequest(w http.ResponseWriter, r *http.Request) (report.GenerateReportRequest, bool) {
	kind, err := report.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.HandleError(w, err)
		return report.GenerateReportRequest{}, false
	}

	query := r.URL.Query()
	departmentIDs := query["department"]

	if monthYear := query.Get("month_year"); monthYear != "" {
		req, err := report.NewMonthYearRequest(kind, monthYear, departmentIDs)
		if err != nil {
			response.HandleError(w, err)
			return report.GenerateReportRequest{}, false
		}
		return req, true
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return report.GenerateReportRequest{}, false
	}

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return report.GenerateReportRequest{}, false
	}

	return report.GenerateReportRequest{
		Kind:          kind,
		Month:         month,
		Year:          year,
		DepartmentIDs: departmentIDs,
	}, true
}
