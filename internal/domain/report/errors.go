package report

import "errors"

var (
	ErrUnknownKind = errors.New("unknown report kind")
	ErrExport      = errors.New("failed to render report")
)
