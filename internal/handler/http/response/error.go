package response

import (
	"errors"
	"net/http"

	"github.com/pickprod/pickprod-backend-go/internal/domain/branch"
	"github.com/pickprod/pickprod-backend-go/internal/domain/closing"
	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchCodeExists):
		Conflict(w, "Branch code already exists")
	case errors.Is(err, branch.ErrBranchHasEmployees):
		Conflict(w, "Branch still has employees assigned")
	case errors.Is(err, branch.ErrBranchHasProduction):
		Conflict(w, "Branch still has production data")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrRegistrationExists):
		Conflict(w, "Employee registration already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)
	case errors.Is(err, employee.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, employee.ErrEmployeeHasClosingRecords):
		Conflict(w, "Employee still has closing records")
	case errors.Is(err, employee.ErrEmployeeHasDiscountRecords):
		Conflict(w, "Employee still has discount records")

	// Ingestion errors carry the offending column or branch names in the
	// error text, so the spreadsheet can be fixed without guessing.
	case errors.Is(err, production.ErrMissingColumn),
		errors.Is(err, production.ErrUnknownBranch),
		errors.Is(err, production.ErrEmptyTable),
		errors.Is(err, production.ErrInvalidKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, production.ErrLineNotFound):
		NotFound(w, "Receiving line not found")
	case errors.Is(err, production.ErrWindowNotFound):
		NotFound(w, "Time window not found")

	// Discount domain errors
	case errors.Is(err, discount.ErrRecordNotFound):
		NotFound(w, "Discount record not found")
	case errors.Is(err, discount.ErrRecordAlreadyExists):
		Conflict(w, "Discount record already exists for this period")
	case errors.Is(err, discount.ErrInvalidPeriod):
		BadRequest(w, "Invalid discount period", nil)

	// Closing domain errors
	case errors.Is(err, closing.ErrRecordNotFound):
		NotFound(w, "Closing record not found")
	case errors.Is(err, closing.ErrInvalidPeriod):
		BadRequest(w, "Invalid closing period", nil)
	case errors.Is(err, closing.ErrNoActiveWorkers):
		BadRequest(w, "No active employees to close", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
