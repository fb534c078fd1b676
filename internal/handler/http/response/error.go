package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Source data the engine refused to aggregate
	var dataErr *payroll.DataError
	if errors.As(err, &dataErr) {
		UnprocessableEntity(w, fmt.Sprintf("Invalid payroll data for employee %s", dataErr.PersonnelNumber), map[string]string{
			"employee_id":      dataErr.EmployeeID,
			"personnel_number": dataErr.PersonnelNumber,
			"reason":           dataErr.Err.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, report.ErrUnknownKind):
		NotFound(w, "Report kind not found")
	case errors.Is(err, report.ErrExport):
		InternalServerError(w, "Failed to render report")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
