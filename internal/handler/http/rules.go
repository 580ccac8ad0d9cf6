package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/response"
)

type RulesHandler interface {
	GetRules(w http.ResponseWriter, r *http.Request)
	UpdateRateTiers(w http.ResponseWriter, r *http.Request)
	UpdateMetricWeights(w http.ResponseWriter, r *http.Request)
	UpdateDiscountRules(w http.ResponseWriter, r *http.Request)
	UpdateThresholdRules(w http.ResponseWriter, r *http.Request)
	UpdateTargets(w http.ResponseWriter, r *http.Request)
	UpdatePalletRule(w http.ResponseWriter, r *http.Request)
}

type RulesHandlerImpl struct {
	rulesService rules.RulesService
}

func NewRulesHandler(rulesService rules.RulesService) RulesHandler {
	return &RulesHandlerImpl{rulesService: rulesService}
}

func (h *RulesHandlerImpl) GetRules(w http.ResponseWriter, r *http.Request) {
	resp, err := h.rulesService.GetRules(r.Context())
	if err != nil {
		slog.Error("Failed to load rules", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *RulesHandlerImpl) UpdateRateTiers(w http.ResponseWriter, r *http.Request) {
	var req rules.UpdateRateTiersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.rulesService.UpdateRateTiers(r.Context(), req); err != nil {
		slog.Error("Failed to update rate tiers", "error", err, "metric", req.Metric)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate tiers updated successfully", nil)
}

func (h *RulesHandlerImpl) UpdateMetricWeights(w http.ResponseWriter, r *http.Request) {
	var req rules.UpdateMetricWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.rulesService.UpdateMetricWeights(r.Context(), req); err != nil {
		slog.Error("Failed to update metric weights", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Metric weights updated successfully", nil)
}

func (h *RulesHandlerImpl) UpdateDiscountRules(w http.ResponseWriter, r *http.Request) {
	var req rules.UpdateDiscountRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.rulesService.UpdateDiscountRules(r.Context(), req); err != nil {
		slog.Error("Failed to update discount rules", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Discount rules updated successfully", nil)
}

func (h *RulesHandlerImpl) UpdateThresholdRules(w http.ResponseWriter, r *http.Request) {
	var req rules.UpdateThresholdRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.rulesService.UpdateThresholdRules(r.Context(), req); err != nil {
		slog.Error("Failed to update threshold rules", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Threshold rules updated successfully", nil)
}

func (h *RulesHandlerImpl) UpdateTargets(w http.ResponseWriter, r *http.Request) {
	var req rules.UpdateTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.rulesService.UpdateTargets(r.Context(), req); err != nil {
		slog.Error("Failed to update targets", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Targets updated successfully", nil)
}

func (h *RulesHandlerImpl) UpdatePalletRule(w http.ResponseWriter, r *http.Request) {
	var req rules.UpdatePalletRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.rulesService.UpdatePalletRule(r.Context(), req); err != nil {
		slog.Error("Failed to update pallet rule", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pallet rule updated successfully", nil)
}
