package payroll

import (
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Period holds the calendar facts of one reporting month. It is read-only after
// NewPeriod and can be shared by every employee of a statement build.
type Period struct {
	Year  int
	Month time.Month

	first        time.Time
	last         time.Time
	daysInMonth  decimal.Decimal
	businessDays map[time.Time]struct{}
}

func NewPeriod(year int, month time.Month) *Period {
	first, last := calendar.MonthBounds(year, month)
	return &Period{
		Year:         year,
		Month:        month,
		first:        first,
		last:         last,
		daysInMonth:  decimal.NewFromInt(int64(calendar.DaysIn(year, month))),
		businessDays: calendar.BusinessDaySet(month, year),
	}
}

// Aggregate computes one employee's figures for the month.
func Aggregate(record personnel.MonthRecord, year int, month time.Month) (payroll.Result, error) {
	return NewPeriod(year, month).Aggregate(record)
}

// Aggregate walks every day from the later of the first day of the month and the
// hire date through the last day of the month. Sick coverage is checked before
// vacation coverage; uncovered days accrue the daily wage and count as worked
// only on business days.
func (p *Period) Aggregate(record personnel.MonthRecord) (payroll.Result, error) {
	emp := record.Employee
	if err := validateRecord(record); err != nil {
		return payroll.Result{}, &payroll.DataError{
			EmployeeID:      emp.ID,
			PersonnelNumber: emp.PersonnelNumber,
			Err:             err,
		}
	}

	sickPeriods := sortSickPeriods(record.SickPeriods)
	vacationPeriods := sortVacationPeriods(record.VacationPeriods)

	start := p.first
	if hired := calendar.Truncate(emp.Hired); hired.After(start) {
		start = hired
	}

	dailyWageRate := emp.Wages().Div(p.daysInMonth)

	result := payroll.Result{BusinessDays: len(p.businessDays)}
	workedPayments := decimal.Zero
	sickPayments := decimal.Zero
	vacationPayments := decimal.Zero

	for date := range calendar.DateRange(start, p.last) {
		if sick, ok := FindCoveringSickPeriod(sickPeriods, date); ok {
			rate, err := SickDayRate(sick, emp)
			if err != nil {
				return payroll.Result{}, &payroll.DataError{
					EmployeeID:      emp.ID,
					PersonnelNumber: emp.PersonnelNumber,
					Err:             err,
				}
			}
			result.SickDays++
			sickPayments = sickPayments.Add(rate)
			continue
		}

		if vacation, ok := FindCoveringVacationPeriod(vacationPeriods, date); ok {
			result.VacationDays++
			vacationPayments = vacationPayments.Add(VacationDayRate(vacation))
			continue
		}

		if _, ok := p.businessDays[date]; ok {
			result.WorkedDays++
		}
		workedPayments = workedPayments.Add(dailyWageRate)
	}

	bonusPayments := p.bonusPayments(record.Bonuses)
	total := workedPayments.Add(sickPayments).Add(vacationPayments).Add(bonusPayments)

	result.Worked = payroll.Taxed(workedPayments)
	result.Sick = payroll.Taxed(sickPayments)
	result.Vacation = payroll.Taxed(vacationPayments)
	result.Bonus = payroll.Taxed(bonusPayments)
	result.Total = payroll.Taxed(total)

	return result, nil
}

func (p *Period) bonusPayments(bonuses []personnel.Bonus) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bonuses {
		if !b.Active || b.Year != p.Year || time.Month(b.Month) != p.Month {
			continue
		}
		sum = sum.Add(b.Amount)
	}
	return sum
}

// validateRecord checks every supplied record, covering or not, so a result never
// depends on which days a bad period happens to touch.
func validateRecord(record personnel.MonthRecord) error {
	emp := record.Employee
	if emp.Hired.IsZero() {
		return payroll.ErrInvalidHireDate
	}
	if _, ok := payroll.InsuranceRatio(emp.InsuranceExperience); !ok {
		return payroll.ErrInvalidInsuranceExperience
	}
	for _, s := range record.SickPeriods {
		if s.Active && s.LastTwoYearsWages.IsNegative() {
			return payroll.ErrNegativeSnapshotRate
		}
	}
	for _, v := range record.VacationPeriods {
		if v.Active && v.AverageDailyEarnings.IsNegative() {
			return payroll.ErrNegativeSnapshotRate
		}
	}
	return nil
}
