package payroll

import (
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/shopspring/decimal"
)

var (
	// IncomeTax is the flat withholding rate applied to every payment category.
	IncomeTax = decimal.RequireFromString("0.13")

	// SickDayRateFloor and SickDayRateCeiling bound the raw sick-pay daily rate
	// before the insurance ratio is applied.
	SickDayRateFloor   = decimal.RequireFromString("196.10")
	SickDayRateCeiling = decimal.RequireFromString("1632.87")

	// TwoYearsDays converts a two-year earnings total into a daily rate.
	TwoYearsDays = decimal.RequireFromString("730.00")
)

var insuranceRatios = map[personnel.InsuranceExperience]decimal.Decimal{
	personnel.LessThanFive:    decimal.RequireFromString("0.60"),
	personnel.FromFiveToEight: decimal.RequireFromString("0.80"),
	personnel.MoreThanEight:   decimal.RequireFromString("1.00"),
}

// InsuranceRatio returns the sick-pay ratio for the tier.
func InsuranceRatio(tier personnel.InsuranceExperience) (decimal.Decimal, bool) {
	ratio, ok := insuranceRatios[tier]
	return ratio, ok
}
