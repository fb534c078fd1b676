package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/personnel"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type personnelRepositoryImpl struct {
	db *database.DB
}

func NewPersonnelRepository(db *database.DB) personnel.PersonnelRepository {
	return &personnelRepositoryImpl{db: db}
}

func (r *personnelRepositoryImpl) ListActiveDepartments(ctx context.Context) ([]personnel.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, active
		FROM departments
		WHERE active = true
		ORDER BY name ASC, id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []personnel.Department{}
	for rows.Next() {
		var d personnel.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Active); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return departments, nil
}

func (r *personnelRepositoryImpl) GetEstablishment(ctx context.Context) (personnel.Establishment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name
		FROM establishments
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var e personnel.Establishment
	err := q.QueryRow(ctx, query).Scan(&e.ID, &e.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return personnel.Establishment{}, personnel.ErrEstablishmentNotFound
		}
		return personnel.Establishment{}, fmt.Errorf("failed to get establishment: %w", err)
	}

	return e, nil
}

// ListMonthRecords loads the employees first, then their sick periods, vacations
// and bonuses with one query each. The three queries run concurrently unless the
// context carries a transaction, whose connection cannot be shared.
func (r *personnelRepositoryImpl) ListMonthRecords(ctx context.Context, year, month int, departmentIDs []string) ([]personnel.MonthRecord, error) {
	q := GetQuerier(ctx, r.db)

	employees, err := r.listEmployees(ctx, q, departmentIDs)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return []personnel.MonthRecord{}, nil
	}

	employeeIDs := make([]string, len(employees))
	for i, e := range employees {
		employeeIDs[i] = e.ID
	}
	first, last := calendar.MonthBounds(year, time.Month(month))

	var (
		sickPeriods     map[string][]personnel.SickPeriod
		vacationPeriods map[string][]personnel.VacationPeriod
		bonuses         map[string][]personnel.Bonus
	)

	g, gCtx := errgroup.WithContext(ctx)
	if _, inTx := q.(pgx.Tx); inTx {
		g.SetLimit(1)
	}

	g.Go(func() error {
		var err error
		sickPeriods, err = r.listSickPeriods(gCtx, q, employeeIDs, first, last)
		return err
	})

	g.Go(func() error {
		var err error
		vacationPeriods, err = r.listVacationPeriods(gCtx, q, employeeIDs, first, last)
		return err
	})

	g.Go(func() error {
		var err error
		bonuses, err = r.listBonuses(gCtx, q, employeeIDs, year, month)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]personnel.MonthRecord, len(employees))
	for i, e := range employees {
		records[i] = personnel.MonthRecord{
			Employee:        e,
			SickPeriods:     sickPeriods[e.ID],
			VacationPeriods: vacationPeriods[e.ID],
			Bonuses:         bonuses[e.ID],
		}
	}
	return records, nil
}

func (r *personnelRepositoryImpl) listEmployees(ctx context.Context, q database.Querier, departmentIDs []string) ([]personnel.Employee, error) {
	query := `
		SELECT
			e.id, e.personnel_number, e.name,
			e.permanent_bonus_amount, e.insurance_experience, e.hired, e.active,
			d.id, d.name, d.active,
			p.id, p.name, p.wages, p.active
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		JOIN positions p ON p.id = e.position_id
		WHERE e.active = true
			AND d.active = true
			AND p.active = true
			AND e.department_id = ANY($1)
		ORDER BY e.personnel_number ASC
	`

	rows, err := q.Query(ctx, query, departmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []personnel.Employee{}
	for rows.Next() {
		var e personnel.Employee
		var tier int16
		err := rows.Scan(
			&e.ID, &e.PersonnelNumber, &e.Name,
			&e.PermanentBonusAmount, &tier, &e.Hired, &e.Active,
			&e.Department.ID, &e.Department.Name, &e.Department.Active,
			&e.Position.ID, &e.Position.Name, &e.Position.Wages, &e.Position.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.InsuranceExperience = personnel.InsuranceExperience(tier)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return employees, nil
}

func (r *personnelRepositoryImpl) listSickPeriods(ctx context.Context, q database.Querier, employeeIDs []string, first, last time.Time) (map[string][]personnel.SickPeriod, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, last_two_years_wages, active
		FROM sick_times
		WHERE active = true
			AND employee_id = ANY($1)
			AND start_date <= $3
			AND end_date >= $2
		ORDER BY employee_id, start_date, id
	`

	rows, err := q.Query(ctx, query, employeeIDs, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to query sick periods: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]personnel.SickPeriod)
	for rows.Next() {
		var p personnel.SickPeriod
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate, &p.LastTwoYearsWages, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan sick period: %w", err)
		}
		result[p.EmployeeID] = append(result[p.EmployeeID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sick period rows error: %w", err)
	}

	return result, nil
}

func (r *personnelRepositoryImpl) listVacationPeriods(ctx context.Context, q database.Querier, employeeIDs []string, first, last time.Time) (map[string][]personnel.VacationPeriod, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, average_daily_earnings, active
		FROM vacations
		WHERE active = true
			AND employee_id = ANY($1)
			AND start_date <= $3
			AND end_date >= $2
		ORDER BY employee_id, start_date, id
	`

	rows, err := q.Query(ctx, query, employeeIDs, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacations: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]personnel.VacationPeriod)
	for rows.Next() {
		var p personnel.VacationPeriod
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate, &p.AverageDailyEarnings, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}
		result[p.EmployeeID] = append(result[p.EmployeeID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vacation rows error: %w", err)
	}

	return result, nil
}

func (r *personnelRepositoryImpl) listBonuses(ctx context.Context, q database.Querier, employeeIDs []string, year, month int) (map[string][]personnel.Bonus, error) {
	query := `
		SELECT id, employee_id, month, year, amount, description, active
		FROM bonuses
		WHERE active = true
			AND employee_id = ANY($1)
			AND year = $2
			AND month = $3
		ORDER BY employee_id, id
	`

	rows, err := q.Query(ctx, query, employeeIDs, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonuses: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]personnel.Bonus)
	for rows.Next() {
		var b personnel.Bonus
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Month, &b.Year, &b.Amount, &b.Description, &b.Active); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		result[b.EmployeeID] = append(result[b.EmployeeID], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bonus rows error: %w", err)
	}

	return result, nil
}
