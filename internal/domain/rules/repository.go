package rules

import (
	"context"
	"encoding/json"
)

// RulesRepository reads and writes keyed configuration documents. Documents
// are opaque JSON at this layer; decoding and defaulting happen in the
// service.
type RulesRepository interface {
	GetDocument(ctx context.Context, key string) (json.RawMessage, error)
	GetDocuments(ctx context.Context, keys []string) (map[string]json.RawMessage, error)
	UpsertDocument(ctx context.Context, key string, value json.RawMessage) error
}
