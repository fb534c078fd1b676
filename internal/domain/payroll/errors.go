package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInsuranceExperience = errors.New("invalid insurance experience")
	ErrNegativeSnapshotRate       = errors.New("negative snapshot rate")
	ErrInvalidHireDate            = errors.New("invalid hire date")
)

// DataError reports an employee whose stored data cannot be aggregated.
type DataError struct {
	EmployeeID      string
	PersonnelNumber string
	Err             error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("employee %s (%s): %v", e.PersonnelNumber, e.EmployeeID, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}
