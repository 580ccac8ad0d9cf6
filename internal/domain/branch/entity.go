package branch

import (
	"strings"
	"time"
)

// Branch - Distribution center that receives collections
type Branch struct {
	ID        string
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches reports whether the raw branch text from a spreadsheet refers to
// this branch. Spreadsheets carry free-form branch text, so a branch matches
// when its code or name appears anywhere inside the text.
func (b Branch) Matches(raw string) bool {
	if raw == "" {
		return false
	}
	if b.Code != "" && strings.Contains(raw, b.Code) {
		return true
	}
	return b.Name != "" && strings.Contains(raw, b.Name)
}
