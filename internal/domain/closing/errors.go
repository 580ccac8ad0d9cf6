package closing

import "errors"

var (
	ErrRecordNotFound  = errors.New("closing record not found")
	ErrInvalidPeriod   = errors.New("invalid closing period")
	ErrNoActiveWorkers = errors.New("no active employees to close")
)
