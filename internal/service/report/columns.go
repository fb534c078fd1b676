package report

import (
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// line is what a column projects from: one selected employee and its figures.
type line struct {
	seq      int
	employee personnel.Employee
	result   payroll.Result
}

// column renders one statement column. Money columns also project the footer
// total from the accumulated rounded amounts; other columns leave it empty.
type column struct {
	header string
	value  func(l line) report.Cell
	total  func(t report.Totals) decimal.Decimal
}

func (c column) footer(t report.Totals) report.Cell {
	if c.total == nil {
		return report.Cell{}
	}
	return report.DecimalCell(c.total(t))
}

var identityColumns = []column{
	{header: "Номер п/п", value: func(l line) report.Cell { return report.IntCell(l.seq) }},
	{header: "Табельный номер", value: func(l line) report.Cell { return report.TextCell(l.employee.PersonnelNumber) }},
	{header: "Фамилия Имя Отчество", value: func(l line) report.Cell { return report.TextCell(l.employee.Name) }},
	{header: "Занимаемая должность", value: func(l line) report.Cell { return report.TextCell(l.employee.Position.Name) }},
}

// money builds a decimal column over one accumulated amount.
func money(header string, pick func(r payroll.Result) decimal.Decimal, total func(t report.Totals) decimal.Decimal) column {
	return column{
		header: header,
		value:  func(l line) report.Cell { return report.DecimalCell(pick(l.result)) },
		total:  total,
	}
}

func summaryColumns() []column {
	return append(append([]column{}, identityColumns...),
		column{header: "Отработано дней, часов", value: func(l line) report.Cell { return report.IntCell(l.result.WorkedDays) }},
		money("Оплата по окладу",
			func(r payroll.Result) decimal.Decimal { return r.Worked.Payments },
			func(t report.Totals) decimal.Decimal { return t.Worked.Payments }),
		money("Больничные",
			func(r payroll.Result) decimal.Decimal { return r.Sick.Payments },
			func(t report.Totals) decimal.Decimal { return t.Sick.Payments }),
		money("Отпуска",
			func(r payroll.Result) decimal.Decimal { return r.Vacation.Payments },
			func(t report.Totals) decimal.Decimal { return t.Vacation.Payments }),
		money("Итого начислено",
			func(r payroll.Result) decimal.Decimal { return r.Total.Payments },
			func(t report.Totals) decimal.Decimal { return t.Total.Payments }),
		money("Удержано и зачтено, руб. НДФЛ",
			func(r payroll.Result) decimal.Decimal { return r.Total.Tax },
			func(t report.Totals) decimal.Decimal { return t.Total.Tax }),
		money("Итого удержано",
			func(r payroll.Result) decimal.Decimal { return r.Total.Tax },
			func(t report.Totals) decimal.Decimal { return t.Total.Tax }),
		money("Выплачено через кассу/банк",
			func(r payroll.Result) decimal.Decimal { return r.Total.Net },
			func(t report.Totals) decimal.Decimal { return t.Total.Net }),
	)
}

// categoryColumns is the layout shared by the sick, vacation and bonus statements.
func categoryColumns(header string, pick func(r payroll.Result) payroll.Amounts, total func(t report.Totals) payroll.Amounts) []column {
	payments := func(r payroll.Result) decimal.Decimal { return pick(r).Payments }
	tax := func(r payroll.Result) decimal.Decimal { return pick(r).Tax }
	net := func(r payroll.Result) decimal.Decimal { return pick(r).Net }
	totalPayments := func(t report.Totals) decimal.Decimal { return total(t).Payments }
	totalTax := func(t report.Totals) decimal.Decimal { return total(t).Tax }
	totalNet := func(t report.Totals) decimal.Decimal { return total(t).Net }

	return append(append([]column{}, identityColumns...),
		money(header, payments, totalPayments),
		money("Итого начислено", payments, totalPayments),
		money("Удержано и зачтено, руб. НДФЛ", tax, totalTax),
		money("Итого удержано", tax, totalTax),
		money("Выплачено через кассу/банк", net, totalNet),
	)
}

func columnsFor(kind report.Kind) ([]column, error) {
	switch kind {
	case report.KindSummary:
		return summaryColumns(), nil
	case report.KindSick:
		return categoryColumns("Больничный",
			func(r payroll.Result) payroll.Amounts { return r.Sick },
			func(t report.Totals) payroll.Amounts { return t.Sick }), nil
	case report.KindVacation:
		return categoryColumns("Отпускные",
			func(r payroll.Result) payroll.Amounts { return r.Vacation },
			func(t report.Totals) payroll.Amounts { return t.Vacation }), nil
	case report.KindBonus:
		return categoryColumns("Премия",
			func(r payroll.Result) payroll.Amounts { return r.Bonus },
			func(t report.Totals) payroll.Amounts { return t.Bonus }), nil
	default:
		return nil, report.ErrUnknownKind
	}
}
