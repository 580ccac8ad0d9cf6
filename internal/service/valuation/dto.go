package valuation

import (
	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PreviewRequest runs one strategy over caller-supplied metrics, so report
// screens can value a rate triple without re-running ingestion or closing.
type PreviewRequest struct {
	Model          string   `json:"model"`
	WeightPerHour  *float64 `json:"weight_per_hour,omitempty"`
	VolumePerHour  *float64 `json:"volume_per_hour,omitempty"`
	PalletsPerHour *float64 `json:"pallets_per_hour,omitempty"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
	Checklist      *float64 `json:"checklist,omitempty"`
	Loss           *float64 `json:"loss,omitempty"`
	Role           string   `json:"role,omitempty"`
	BranchCode     string   `json:"branch_code,omitempty"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Model != ModelContinuous && r.Model != ModelThreshold {
		errs = append(errs, validator.ValidationError{Field: "model", Message: "must be 'continuous' or 'threshold'"})
	}
	if r.Role != "" && !employee.Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'separator' or 'driver'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *PreviewRequest) ToInput() Input {
	return Input{
		WeightPerHour:  fromPtr(r.WeightPerHour),
		VolumePerHour:  fromPtr(r.VolumePerHour),
		PalletsPerHour: fromPtr(r.PalletsPerHour),
		Accuracy:       fromPtr(r.Accuracy),
		Checklist:      fromPtr(r.Checklist),
		Loss:           fromPtr(r.Loss),
		Role:           employee.Role(r.Role),
		BranchCode:     r.BranchCode,
	}
}

func fromPtr(v *float64) production.OptFloat {
	if v == nil {
		return production.NoFloat()
	}
	return production.SomeFloat(*v)
}

type PreviewResponse struct {
	Model      string          `json:"model"`
	GrossValue decimal.Decimal `json:"gross_value"`
}
