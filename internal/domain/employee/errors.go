package employee

import "errors"

var (
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrRegistrationExists         = errors.New("employee registration already exists")
	ErrInvalidRole                = errors.New("invalid employee role")
	ErrBranchNotFound             = errors.New("branch not found")
	ErrEmployeeInactive           = errors.New("employee is inactive")
	ErrEmployeeHasClosingRecords  = errors.New("employee still has closing records")
	ErrEmployeeHasDiscountRecords = errors.New("employee still has discount records")
)
