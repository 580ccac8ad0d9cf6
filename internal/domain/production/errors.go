package production

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn  = errors.New("required column not found in spreadsheet")
	ErrUnknownBranch  = errors.New("spreadsheet references unknown branch")
	ErrEmptyTable     = errors.New("spreadsheet has no data rows")
	ErrInvalidKind    = errors.New("invalid spreadsheet kind")
	ErrLineExists     = errors.New("receiving line already exists")
	ErrWindowExists   = errors.New("time window already exists")
	ErrLineNotFound   = errors.New("receiving line not found")
	ErrWindowNotFound = errors.New("time window not found")
)

// MissingColumnError names the logical column whose header aliases were all
// absent. Matches ErrMissingColumn under errors.Is.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in spreadsheet", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// UnknownBranchError lists the distinct branch texts that matched no known
// branch. Matches ErrUnknownBranch under errors.Is.
type UnknownBranchError struct {
	Names []string
}

func (e *UnknownBranchError) Error() string {
	return fmt.Sprintf("unknown branches in spreadsheet: %s", strings.Join(e.Names, ", "))
}

func (e *UnknownBranchError) Is(target error) bool {
	return target == ErrUnknownBranch
}
