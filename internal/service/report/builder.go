package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/service/payroll"
)

// BuildInput is everything a statement build needs; the builder does no I/O.
type BuildInput struct {
	Kind             report.Kind
	Year             int
	Month            int
	OrganizationName string
	DepartmentIDs    []string
	Records          []personnel.MonthRecord
	GeneratedAt      time.Time
}

// Build selects the active employees of the requested departments, aggregates each
// one for the month and lays out rows and the footer for the statement kind.
// The first employee with unusable data aborts the build.
func Build(in BuildInput) (report.Report, error) {
	columns, err := columnsFor(in.Kind)
	if err != nil {
		return report.Report{}, err
	}

	period := payroll.NewPeriod(in.Year, time.Month(in.Month))
	selected := selectEmployees(in.Records, in.DepartmentIDs)

	rows := make([]report.Row, 0, len(selected))
	totals := report.NewTotals()
	for i, record := range selected {
		result, err := period.Aggregate(record)
		if err != nil {
			return report.Report{}, fmt.Errorf("build %s report: %w", in.Kind, err)
		}
		totals = totals.Add(result)

		l := line{seq: i + 1, employee: record.Employee, result: result}
		row := make(report.Row, len(columns))
		for c, col := range columns {
			row[c] = col.value(l)
		}
		rows = append(rows, row)
	}

	header := make([]string, len(columns))
	footer := make(report.Row, len(columns))
	for c, col := range columns {
		header[c] = col.header
		footer[c] = col.footer(totals)
	}
	footer[0] = report.TextCell(report.FooterLabel)

	return report.Report{
		Kind:             in.Kind,
		Name:             in.Kind.DisplayName(),
		Month:            in.Month,
		Year:             in.Year,
		OrganizationName: in.OrganizationName,
		Title:            report.Title,
		Caption:          calendar.FormatCaption(in.Year, time.Month(in.Month)),
		Header:           header,
		Rows:             rows,
		Footer:           footer,
		Signature:        report.Signature,
		Empty:            len(rows) == 0,
		GeneratedAt:      in.GeneratedAt,
		Totals:           totals,
	}, nil
}

// selectEmployees keeps active employees whose department is requested, ordered
// by personnel number. Records keep their relative order on equal numbers.
func selectEmployees(records []personnel.MonthRecord, departmentIDs []string) []personnel.MonthRecord {
	departments := make(map[string]struct{}, len(departmentIDs))
	for _, id := range departmentIDs {
		departments[id] = struct{}{}
	}

	selected := make([]personnel.MonthRecord, 0, len(records))
	for _, r := range records {
		if !r.Employee.Active {
			continue
		}
		if _, ok := departments[r.Employee.Department.ID]; !ok {
			continue
		}
		selected = append(selected, r)
	}

	slices.SortStableFunc(selected, func(a, b personnel.MonthRecord) int {
		return strings.Compare(a.Employee.PersonnelNumber, b.Employee.PersonnelNumber)
	})
	return selected
}
