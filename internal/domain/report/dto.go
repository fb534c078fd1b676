package report

import (
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/validator"
)

type GenerateReportRequest struct {
	Kind          Kind     `json:"kind"`
	Month         int      `json:"month"`
	Year          int      `json:"year"`
	DepartmentIDs []string `json:"department_ids"`
}

func (r *GenerateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of summary, sick, vacation, bonus",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < validator.MinYear || r.Year > validator.MaxYear {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1900 and 9999",
		})
	}

	if len(r.DepartmentIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "at least one department is required",
		})
	}
	for _, id := range r.DepartmentIDs {
		if !validator.IsUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "department",
				Message: "department must be a valid id",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NewMonthYearRequest builds a request from the "MM/YYYY" period picker value.
func NewMonthYearRequest(kind Kind, monthYear string, departmentIDs []string) (GenerateReportRequest, error) {
	month, year, err := validator.ParseMonthYear(monthYear)
	if err != nil {
		return GenerateReportRequest{}, validator.ValidationErrors{
			{Field: "month_year", Message: "month_year must match MM/YYYY"},
		}
	}
	return GenerateReportRequest{
		Kind:          kind,
		Month:         month,
		Year:          year,
		DepartmentIDs: departmentIDs,
	}, nil
}

type KindResponse struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
