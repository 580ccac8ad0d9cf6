package branch

import "errors"

var (
	ErrBranchNotFound      = errors.New("branch not found")
	ErrBranchCodeExists    = errors.New("branch code already exists")
	ErrBranchHasEmployees  = errors.New("branch still has employees assigned")
	ErrBranchHasProduction = errors.New("branch still has production data")
)
