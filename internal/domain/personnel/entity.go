package personnel

import (
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

type Department struct {
	ID     string
	Name   string
	Active bool
}

type Position struct {
	ID     string
	Name   string
	Wages  decimal.Decimal
	Active bool
}

// InsuranceExperience is the employee's insurance record tier, stored as a small integer.
type InsuranceExperience int

const (
	LessThanFive    InsuranceExperience = 0
	FromFiveToEight InsuranceExperience = 1
	MoreThanEight   InsuranceExperience = 2
)

func (e InsuranceExperience) String() string {
	switch e {
	case LessThanFive:
		return "less_than_5"
	case FromFiveToEight:
		return "from_5_to_8"
	case MoreThanEight:
		return "more_than_8"
	default:
		return "unknown"
	}
}

type Employee struct {
	ID                   string
	PersonnelNumber      string
	Name                 string
	Department           Department
	Position             Position
	PermanentBonusAmount decimal.Decimal
	InsuranceExperience  InsuranceExperience
	Hired                time.Time
	Active               bool
}

var (
	twoYearsMonths = decimal.NewFromInt(24)
	averageMonth   = decimal.NewFromInt(30)
)

// Wages is the monthly base: position rate plus the permanent bonus.
func (e Employee) Wages() decimal.Decimal {
	return e.Position.Wages.Add(e.PermanentBonusAmount)
}

// LastTwoYearsWages approximates two-year earnings as 24 monthly wages.
func (e Employee) LastTwoYearsWages() decimal.Decimal {
	return e.Wages().Mul(twoYearsMonths)
}

func (e Employee) AverageDailyEarnings() decimal.Decimal {
	return e.Wages().Div(averageMonth)
}

// SickPeriod is an inclusive sick-leave interval. LastTwoYearsWages is frozen when
// the period is recorded and later wage changes do not affect it.
type SickPeriod struct {
	ID                string
	EmployeeID        string
	StartDate         time.Time
	EndDate           time.Time
	LastTwoYearsWages decimal.Decimal
	Active            bool
}

// Covers reports whether date falls inside the period, both ends included.
func (p SickPeriod) Covers(date time.Time) bool {
	return coversDay(p.StartDate, p.EndDate, date)
}

// VacationPeriod is an inclusive vacation interval with its frozen daily rate.
type VacationPeriod struct {
	ID                   string
	EmployeeID           string
	StartDate            time.Time
	EndDate              time.Time
	AverageDailyEarnings decimal.Decimal
	Active               bool
}

func (p VacationPeriod) Covers(date time.Time) bool {
	return coversDay(p.StartDate, p.EndDate, date)
}

// coversDay compares calendar days, each taken in its own location.
func coversDay(start, end, date time.Time) bool {
	day := calendar.Truncate(date)
	return !day.Before(calendar.Truncate(start)) && !day.After(calendar.Truncate(end))
}

type Bonus struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	Amount      decimal.Decimal
	Description string
	Active      bool
}

type Establishment struct {
	ID   string
	Name string
}

// MonthRecord is the materialized input for one employee and one month.
type MonthRecord struct {
	Employee        Employee
	SickPeriods     []SickPeriod
	VacationPeriods []VacationPeriod
	Bonuses         []Bonus
}
