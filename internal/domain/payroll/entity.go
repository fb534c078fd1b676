package payroll

import "github.com/shopspring/decimal"

// Amounts is one payment category: gross payments, withheld tax and the net payout.
type Amounts struct {
	Payments decimal.Decimal
	Tax      decimal.Decimal
	Net      decimal.Decimal
}

// Taxed derives tax and net from full-precision payments and rounds all three to cents.
func Taxed(payments decimal.Decimal) Amounts {
	tax := payments.Mul(IncomeTax)
	return Amounts{
		Payments: payments.Round(2),
		Tax:      tax.Round(2),
		Net:      payments.Sub(tax).Round(2),
	}
}

// Add sums two already rounded amounts.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Payments: a.Payments.Add(b.Payments),
		Tax:      a.Tax.Add(b.Tax),
		Net:      a.Net.Add(b.Net),
	}
}

// Result is one employee's figures for one month. Amounts are rounded to two places.
type Result struct {
	BusinessDays int
	WorkedDays   int
	SickDays     int
	VacationDays int

	Worked   Amounts
	Sick     Amounts
	Vacation Amounts
	Bonus    Amounts
	Total    Amounts
}
