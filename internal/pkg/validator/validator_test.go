package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("01912d68-783e-7a03-8467-5b9b228f64c1"))
	assert.True(t, IsValidUUID("9b2f1c44-1d2a-4e5f-8a3b-6c7d8e9f0a1b"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("9b2f1c441d2a4e5f8a3b6c7d8e9f0a1b"))
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNumeric("000082"))
	assert.True(t, IsNumeric("85"))
	assert.False(t, IsNumeric("85a"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("8.5"))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	date, ok := IsValidDate("2025-06-15")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, 6, int(date.Month()))

	_, ok = IsValidDate("15/06/2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	t.Parallel()

	roles := []string{"separator", "driver"}
	assert.True(t, IsInSlice("separator", roles))
	assert.True(t, IsInSlice("driver", roles))
	assert.False(t, IsInSlice("manager", roles))
	assert.False(t, IsInSlice("", roles))
}

func TestIsValidPeriod(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidPeriod(1, 2025))
	assert.True(t, IsValidPeriod(12, 2024))
	assert.False(t, IsValidPeriod(0, 2025))
	assert.False(t, IsValidPeriod(13, 2025))
	assert.False(t, IsValidPeriod(6, 2019))
	assert.False(t, IsValidPeriod(6, 2100))
}
