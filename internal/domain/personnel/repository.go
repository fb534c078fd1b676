package personnel

import "context"

type PersonnelRepository interface {
	// ListActiveDepartments returns active departments ordered by name.
	ListActiveDepartments(ctx context.Context) ([]Department, error)

	// ListMonthRecords returns active employees of the given departments ordered by
	// personnel number, each with the active periods and bonuses relevant to the month.
	ListMonthRecords(ctx context.Context, year, month int, departmentIDs []string) ([]MonthRecord, error)

	// GetEstablishment returns the most recently created establishment.
	GetEstablishment(ctx context.Context) (Establishment, error)
}
