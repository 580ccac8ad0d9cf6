package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/response"
	"github.com/pickprod/pickprod-backend-go/internal/service/valuation"
)

type ValuationHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
}

type ValuationHandlerImpl struct {
	rulesService rules.RulesService
}

func NewValuationHandler(rulesService rules.RulesService) ValuationHandler {
	return &ValuationHandlerImpl{rulesService: rulesService}
}

// Preview values a caller-supplied set of metrics under the requested model
// and the current rules. The monthly ceiling applies to the previewed value
// the same way it caps a closed month.
func (h *ValuationHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req valuation.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	strategy, err := valuation.ByName(req.Model)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	snap, err := h.rulesService.Snapshot(r.Context())
	if err != nil {
		slog.Error("Failed to load rules snapshot", "error", err)
		response.HandleError(w, err)
		return
	}

	gross := valuation.ClampCeiling(strategy.Gross(req.ToInput(), snap), snap)

	response.Success(w, valuation.PreviewResponse{
		Model:      strategy.Name(),
		GrossValue: gross,
	})
}
