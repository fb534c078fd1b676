package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

func newTestEmployee(wages string, tier personnel.InsuranceExperience, hired time.Time) personnel.Employee {
	return personnel.Employee{
		ID:                   "emp-1",
		PersonnelNumber:      "0001",
		Name:                 "Иванов Иван Иванович",
		Department:           personnel.Department{ID: "dep-1", Name: "Бухгалтерия", Active: true},
		Position:             personnel.Position{ID: "pos-1", Name: "Бухгалтер", Wages: dec(wages), Active: true},
		PermanentBonusAmount: decimal.Zero,
		InsuranceExperience:  tier,
		Hired:                hired,
		Active:               true,
	}
}

var longAgo = calendar.Date(2015, time.May, 1)

func TestAggregate_NoAbsences(t *testing.T) {
	record := personnel.MonthRecord{Employee: newTestEmployee("30000.00", personnel.MoreThanEight, longAgo)}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assert.Equal(t, 22, result.BusinessDays)
	assert.Equal(t, 22, result.WorkedDays)
	assert.Zero(t, result.SickDays)
	assert.Zero(t, result.VacationDays)
	assertMoney(t, "30000.00", result.Worked.Payments)
	assertMoney(t, "3900.00", result.Worked.Tax)
	assertMoney(t, "26100.00", result.Worked.Net)
	assertMoney(t, "0.00", result.Sick.Payments)
	assertMoney(t, "0.00", result.Vacation.Payments)
	assertMoney(t, "0.00", result.Bonus.Payments)
	assertMoney(t, "30000.00", result.Total.Payments)
	assertMoney(t, "3900.00", result.Total.Tax)
	assertMoney(t, "26100.00", result.Total.Net)
}

func TestAggregate_WorkedPaymentsMatchWagesWithinOneCent(t *testing.T) {
	cases := []struct {
		wages string
		year  int
		month time.Month
	}{
		{"1000.00", 2024, time.January},
		{"1234.57", 2023, time.February},
		{"33333.33", 2024, time.February},
		{"99999.99", 2024, time.July},
		{"17.01", 2024, time.September},
	}
	for _, c := range cases {
		emp := newTestEmployee(c.wages, personnel.LessThanFive, longAgo)
		emp.PermanentBonusAmount = dec("0.01")

		result, err := Aggregate(personnel.MonthRecord{Employee: emp}, c.year, c.month)
		require.NoError(t, err)

		diff := result.Worked.Payments.Sub(emp.Wages()).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01")), "wages %s in %d-%02d: got %s", c.wages, c.year, c.month, result.Worked.Payments)
		assertMoney(t, "0.00", result.Sick.Payments)
		assertMoney(t, "0.00", result.Vacation.Payments)
		assertMoney(t, "0.00", result.Bonus.Payments)
	}
}

func TestAggregate_HiredMidMonth(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.LessThanFive, calendar.Date(2024, time.April, 10)),
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assertMoney(t, "21000.00", result.Worked.Payments)
	assert.Equal(t, 15, result.WorkedDays)
	assert.Equal(t, 22, result.BusinessDays)
}

func TestAggregate_HiredAfterMonthEnd(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.LessThanFive, calendar.Date(2024, time.May, 2)),
		Bonuses: []personnel.Bonus{
			{ID: "b-1", EmployeeID: "emp-1", Month: 4, Year: 2024, Amount: dec("100.00"), Active: true},
		},
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assert.Zero(t, result.WorkedDays)
	assert.Zero(t, result.SickDays)
	assert.Zero(t, result.VacationDays)
	assert.Equal(t, 22, result.BusinessDays)
	assertMoney(t, "0.00", result.Worked.Payments)
	// bonuses do not depend on the day window
	assertMoney(t, "100.00", result.Bonus.Payments)
}

func TestAggregate_FullMonthSickAtFloor(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.FromFiveToEight, longAgo),
		SickPeriods: []personnel.SickPeriod{{
			ID:                "s-1",
			EmployeeID:        "emp-1",
			StartDate:         calendar.Date(2024, time.June, 1),
			EndDate:           calendar.Date(2024, time.June, 30),
			LastTwoYearsWages: decimal.Zero,
			Active:            true,
		}},
	}

	result, err := Aggregate(record, 2024, time.June)
	require.NoError(t, err)

	assert.Equal(t, 30, result.SickDays)
	assert.Zero(t, result.WorkedDays)
	assertMoney(t, "4706.40", result.Sick.Payments)
	assertMoney(t, "611.83", result.Sick.Tax)
	assertMoney(t, "4094.57", result.Sick.Net)
	assertMoney(t, "0.00", result.Worked.Payments)
}

func TestAggregate_SickWinsOverVacation(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.MoreThanEight, longAgo),
		SickPeriods: []personnel.SickPeriod{{
			ID:                "s-1",
			StartDate:         calendar.Date(2024, time.April, 5),
			EndDate:           calendar.Date(2024, time.April, 10),
			LastTwoYearsWages: dec("720000.00"),
			Active:            true,
		}},
		VacationPeriods: []personnel.VacationPeriod{{
			ID:                   "v-1",
			StartDate:            calendar.Date(2024, time.April, 8),
			EndDate:              calendar.Date(2024, time.April, 12),
			AverageDailyEarnings: dec("1000.00"),
			Active:               true,
		}},
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assert.Equal(t, 6, result.SickDays)
	assert.Equal(t, 2, result.VacationDays)
	assertMoney(t, "2000.00", result.Vacation.Payments)
	// 720000 / 730 = 986.30136..., ratio 1.00
	assertMoney(t, "5917.81", result.Sick.Payments)
	// 22 days left uncovered, 16 of them business days
	assert.Equal(t, 16, result.WorkedDays)
	assertMoney(t, "22000.00", result.Worked.Payments)
}

func TestAggregate_PeriodDatesOutsideUTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	est := time.FixedZone("EST", -5*60*60)
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.MoreThanEight, longAgo),
		SickPeriods: []personnel.SickPeriod{{
			ID:                "s-1",
			StartDate:         time.Date(2024, time.April, 15, 0, 0, 0, 0, est),
			EndDate:           time.Date(2024, time.April, 16, 0, 0, 0, 0, est),
			LastTwoYearsWages: dec("720000.00"),
			Active:            true,
		}},
		VacationPeriods: []personnel.VacationPeriod{{
			ID:                   "v-1",
			StartDate:            time.Date(2024, time.April, 3, 0, 0, 0, 0, msk),
			EndDate:              time.Date(2024, time.April, 5, 0, 0, 0, 0, msk),
			AverageDailyEarnings: dec("1000.00"),
			Active:               true,
		}},
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assert.Equal(t, 3, result.VacationDays)
	assertMoney(t, "3000.00", result.Vacation.Payments)
	assert.Equal(t, 2, result.SickDays)
	assertMoney(t, "1972.60", result.Sick.Payments)
	assert.Equal(t, 17, result.WorkedDays)
	assertMoney(t, "25000.00", result.Worked.Payments)
}

func TestAggregate_InactiveRecordsIgnored(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.MoreThanEight, longAgo),
		SickPeriods: []personnel.SickPeriod{{
			ID:        "s-1",
			StartDate: calendar.Date(2024, time.April, 1),
			EndDate:   calendar.Date(2024, time.April, 30),
			Active:    false,
		}},
		VacationPeriods: []personnel.VacationPeriod{{
			ID:                   "v-1",
			StartDate:            calendar.Date(2024, time.April, 1),
			EndDate:              calendar.Date(2024, time.April, 30),
			AverageDailyEarnings: dec("-1.00"),
			Active:               false,
		}},
		Bonuses: []personnel.Bonus{
			{ID: "b-1", Month: 4, Year: 2024, Amount: dec("500.00"), Active: false},
		},
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assert.Zero(t, result.SickDays)
	assert.Zero(t, result.VacationDays)
	assertMoney(t, "30000.00", result.Worked.Payments)
	assertMoney(t, "0.00", result.Bonus.Payments)
}

func TestAggregate_BonusMatchesMonthAndYear(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.MoreThanEight, longAgo),
		Bonuses: []personnel.Bonus{
			{ID: "b-1", Month: 3, Year: 2024, Amount: dec("5000.00"), Active: true},
			{ID: "b-2", Month: 4, Year: 2023, Amount: dec("7000.00"), Active: true},
		},
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)
	assertMoney(t, "0.00", result.Bonus.Payments)
	assertMoney(t, "30000.00", result.Total.Payments)

	record.Bonuses = append(record.Bonuses,
		personnel.Bonus{ID: "b-3", Month: 4, Year: 2024, Amount: dec("1500.50"), Active: true},
		personnel.Bonus{ID: "b-4", Month: 4, Year: 2024, Amount: dec("499.50"), Active: true},
	)

	result, err = Aggregate(record, 2024, time.April)
	require.NoError(t, err)
	assertMoney(t, "2000.00", result.Bonus.Payments)
	assertMoney(t, "260.00", result.Bonus.Tax)
	assertMoney(t, "1740.00", result.Bonus.Net)
	assertMoney(t, "32000.00", result.Total.Payments)
}

func TestAggregate_TotalTaxComputedFromTotal(t *testing.T) {
	// Only April 30 is inside the window and it is a vacation day, so the
	// worked category stays empty.
	record := personnel.MonthRecord{
		Employee: newTestEmployee("30000.00", personnel.MoreThanEight, calendar.Date(2024, time.April, 30)),
		VacationPeriods: []personnel.VacationPeriod{{
			ID:                   "v-1",
			StartDate:            calendar.Date(2024, time.April, 30),
			EndDate:              calendar.Date(2024, time.May, 14),
			AverageDailyEarnings: dec("0.05"),
			Active:               true,
		}},
		Bonuses: []personnel.Bonus{
			{ID: "b-1", Month: 4, Year: 2024, Amount: dec("0.05"), Active: true},
		},
	}

	result, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assertMoney(t, "0.00", result.Worked.Payments)
	assertMoney(t, "0.01", result.Vacation.Tax)
	assertMoney(t, "0.01", result.Bonus.Tax)
	assertMoney(t, "0.10", result.Total.Payments)
	assertMoney(t, "0.01", result.Total.Tax)
	assertMoney(t, "0.09", result.Total.Net)
	assert.True(t, result.Total.Tax.Equal(result.Total.Payments.Mul(payroll.IncomeTax).Round(2)))
}

func TestAggregate_Idempotent(t *testing.T) {
	record := personnel.MonthRecord{
		Employee: newTestEmployee("41234.56", personnel.FromFiveToEight, calendar.Date(2024, time.March, 7)),
		SickPeriods: []personnel.SickPeriod{{
			ID:                "s-1",
			StartDate:         calendar.Date(2024, time.March, 11),
			EndDate:           calendar.Date(2024, time.March, 13),
			LastTwoYearsWages: dec("989629.44"),
			Active:            true,
		}},
		VacationPeriods: []personnel.VacationPeriod{{
			ID:                   "v-1",
			StartDate:            calendar.Date(2024, time.March, 25),
			EndDate:              calendar.Date(2024, time.April, 3),
			AverageDailyEarnings: dec("1374.4853"),
			Active:               true,
		}},
	}

	period := NewPeriod(2024, time.March)
	first, err := period.Aggregate(record)
	require.NoError(t, err)
	second, err := period.Aggregate(record)
	require.NoError(t, err)
	third, err := Aggregate(record, 2024, time.March)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	periods := []personnel.SickPeriod{
		{ID: "s-2", StartDate: calendar.Date(2024, time.April, 20), EndDate: calendar.Date(2024, time.April, 21), Active: true},
		{ID: "s-1", StartDate: calendar.Date(2024, time.April, 2), EndDate: calendar.Date(2024, time.April, 3), Active: true},
	}
	record := personnel.MonthRecord{
		Employee:    newTestEmployee("30000.00", personnel.MoreThanEight, longAgo),
		SickPeriods: periods,
	}

	_, err := Aggregate(record, 2024, time.April)
	require.NoError(t, err)

	assert.Equal(t, "s-2", periods[0].ID)
	assert.Equal(t, "s-1", periods[1].ID)
}

func TestAggregate_DataErrors(t *testing.T) {
	base := func() personnel.MonthRecord {
		return personnel.MonthRecord{Employee: newTestEmployee("30000.00", personnel.MoreThanEight, longAgo)}
	}

	cases := []struct {
		name   string
		mutate func(r *personnel.MonthRecord)
		want   error
	}{
		{
			name:   "unknown insurance tier",
			mutate: func(r *personnel.MonthRecord) { r.Employee.InsuranceExperience = personnel.InsuranceExperience(9) },
			want:   payroll.ErrInvalidInsuranceExperience,
		},
		{
			name:   "zero hire date",
			mutate: func(r *personnel.MonthRecord) { r.Employee.Hired = time.Time{} },
			want:   payroll.ErrInvalidHireDate,
		},
		{
			name: "negative sick snapshot",
			mutate: func(r *personnel.MonthRecord) {
				r.SickPeriods = []personnel.SickPeriod{{
					ID:                "s-1",
					StartDate:         calendar.Date(2024, time.April, 1),
					EndDate:           calendar.Date(2024, time.April, 2),
					LastTwoYearsWages: dec("-10.00"),
					Active:            true,
				}}
			},
			want: payroll.ErrNegativeSnapshotRate,
		},
		{
			// the period lies outside the window but is still validated
			name: "negative vacation snapshot outside the window",
			mutate: func(r *personnel.MonthRecord) {
				r.VacationPeriods = []personnel.VacationPeriod{{
					ID:                   "v-1",
					StartDate:            calendar.Date(2024, time.March, 1),
					EndDate:              calendar.Date(2024, time.March, 2),
					AverageDailyEarnings: dec("-0.01"),
					Active:               true,
				}}
			},
			want: payroll.ErrNegativeSnapshotRate,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			record := base()
			c.mutate(&record)

			_, err := Aggregate(record, 2024, time.April)
			require.Error(t, err)

			var dataErr *payroll.DataError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, "emp-1", dataErr.EmployeeID)
			assert.Equal(t, "0001", dataErr.PersonnelNumber)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestNewPeriod(t *testing.T) {
	p := NewPeriod(2024, time.February)

	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, time.February, p.Month)
	assert.Len(t, p.businessDays, 21)
	assert.True(t, p.daysInMonth.Equal(decimal.NewFromInt(29)))
}
