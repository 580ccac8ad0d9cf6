package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
)

type rulesRepository struct {
	db *database.DB
}

func NewRulesRepository(db *database.DB) rules.RulesRepository {
	return &rulesRepository{db: db}
}

func (r *rulesRepository) GetDocument(ctx context.Context, key string) (json.RawMessage, error) {
	q := GetQuerier(ctx, r.db)

	var raw json.RawMessage
	err := q.QueryRow(ctx, `SELECT value FROM config WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, rules.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get config document: %w", err)
	}

	return raw, nil
}

func (r *rulesRepository) GetDocuments(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value FROM config WHERE key = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get config documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var raw json.RawMessage
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan config document: %w", err)
		}
		docs[key] = raw
	}

	return docs, rows.Err()
}

func (r *rulesRepository) UpsertDocument(ctx context.Context, key string, value json.RawMessage) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert config document: %w", err)
	}

	return nil
}
