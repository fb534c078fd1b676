package payroll

import (
	"cmp"
	"slices"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/shopspring/decimal"
)

// FindCoveringSickPeriod returns the first active period covering date.
// Periods are expected in (StartDate, ID) order, see sortSickPeriods.
func FindCoveringSickPeriod(periods []personnel.SickPeriod, date time.Time) (personnel.SickPeriod, bool) {
	for _, p := range periods {
		if p.Active && p.Covers(date) {
			return p, true
		}
	}
	return personnel.SickPeriod{}, false
}

// FindCoveringVacationPeriod returns the first active period covering date.
func FindCoveringVacationPeriod(periods []personnel.VacationPeriod, date time.Time) (personnel.VacationPeriod, bool) {
	for _, p := range periods {
		if p.Active && p.Covers(date) {
			return p, true
		}
	}
	return personnel.VacationPeriod{}, false
}

// SickDayRate converts the period's two-year wages snapshot into a daily rate,
// clamps it into the statutory bounds and applies the employee's insurance ratio.
func SickDayRate(period personnel.SickPeriod, emp personnel.Employee) (decimal.Decimal, error) {
	ratio, ok := payroll.InsuranceRatio(emp.InsuranceExperience)
	if !ok {
		return decimal.Zero, payroll.ErrInvalidInsuranceExperience
	}

	daily := period.LastTwoYearsWages.Div(payroll.TwoYearsDays)
	switch {
	case daily.LessThan(payroll.SickDayRateFloor):
		daily = payroll.SickDayRateFloor
	case daily.GreaterThan(payroll.SickDayRateCeiling):
		daily = payroll.SickDayRateCeiling
	}

	return daily.Mul(ratio), nil
}

// VacationDayRate is the frozen average daily earnings of the period.
func VacationDayRate(period personnel.VacationPeriod) decimal.Decimal {
	return period.AverageDailyEarnings
}

func sortSickPeriods(periods []personnel.SickPeriod) []personnel.SickPeriod {
	sorted := slices.Clone(periods)
	slices.SortStableFunc(sorted, func(a, b personnel.SickPeriod) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ID, b.ID))
	})
	return sorted
}

func sortVacationPeriods(periods []personnel.VacationPeriod) []personnel.VacationPeriod {
	sorted := slices.Clone(periods)
	slices.SortStableFunc(sorted, func(a, b personnel.VacationPeriod) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ID, b.ID))
	})
	return sorted
}
