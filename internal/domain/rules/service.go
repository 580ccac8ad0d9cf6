package rules

import "context"

// RulesService manages the rule configuration documents and materializes
// immutable snapshots for batch runs.
type RulesService interface {
	// Snapshot loads every rule document once, filling absent or partial
	// documents with the documented defaults.
	Snapshot(ctx context.Context) (Snapshot, error)

	GetRules(ctx context.Context) (RulesResponse, error)
	UpdateRateTiers(ctx context.Context, req UpdateRateTiersRequest) error
	UpdateMetricWeights(ctx context.Context, req UpdateMetricWeightsRequest) error
	UpdateDiscountRules(ctx context.Context, req UpdateDiscountRulesRequest) error
	UpdateThresholdRules(ctx context.Context, req UpdateThresholdRulesRequest) error
	UpdateTargets(ctx context.Context, req UpdateTargetsRequest) error
	UpdatePalletRule(ctx context.Context, req UpdatePalletRuleRequest) error
}
