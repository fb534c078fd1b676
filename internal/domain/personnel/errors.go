package personnel

import "errors"

var (
	ErrEstablishmentNotFound = errors.New("establishment not found")
)
