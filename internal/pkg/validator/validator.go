package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Valid statement years.
const (
	MinYear = 1900
	MaxYear = 9999
)

// IsUUID accepts any RFC 4122 UUID in its canonical 36-character form.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

var monthYearRegex = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)

// ParseMonthYear parses the "MM/YYYY" period picker value.
func ParseMonthYear(s string) (month int, year int, err error) {
	m := monthYearRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid month_year %q: expected MM/YYYY", s)
	}

	month, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month_year %q: month must be between 1 and 12", s)
	}
	if year < MinYear {
		return 0, 0, fmt.Errorf("invalid month_year %q: year must be at least %d", s, MinYear)
	}
	return month, year, nil
}
