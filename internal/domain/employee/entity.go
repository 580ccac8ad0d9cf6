package employee

import "time"

// Role enum
type Role string

const (
	RoleSeparator Role = "separator"
	RoleDriver    Role = "driver"
)

func (r Role) Valid() bool {
	return r == RoleSeparator || r == RoleDriver
}

// Employee - Warehouse worker eligible for productivity bonus
type Employee struct {
	ID           string
	Registration string
	FullName     string
	BranchID     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	BranchName *string
	BranchCode *string
}
