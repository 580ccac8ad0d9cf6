package discount

import "errors"

var (
	ErrRecordNotFound      = errors.New("discount record not found")
	ErrRecordAlreadyExists = errors.New("discount record already exists for this period")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidPeriod       = errors.New("invalid discount period")
)
