package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// AgentActionStore implements storage.AgentActionStore using PostgreSQL.
type AgentActionStore struct {
	pool *Pool
}

// NewAgentActionStore creates a new AgentActionStore.
func NewAgentActionStore(pool *Pool) *AgentActionStore {
	return &AgentActionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AgentActionStore = (*AgentActionStore)(nil)

// Insert appends an audit entry. Returns ErrDuplicateKey if the action ID exists.
func (s *AgentActionStore) Insert(ctx context.Context, a *domain.AgentAction) error {
	if a == nil || a.ID == "" || a.UserWallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO agent_actions (id, user_wallet, action_type, item_kind, item_id, rule_matched, cost, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var kind *string
	if a.ItemKind != nil {
		k := string(*a.ItemKind)
		kind = &k
	}

	_, err := s.pool.Exec(ctx, query,
		a.ID,
		a.UserWallet,
		a.ActionType,
		kind,
		a.ItemID,
		a.RuleMatched,
		a.Cost,
		a.Success,
		a.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert agent action: %w", err)
	}
	return nil
}

// RecentByUser retrieves up to limit actions for a user ordered by created_at DESC.
func (s *AgentActionStore) RecentByUser(ctx context.Context, userWallet string, limit int) ([]*domain.AgentAction, error) {
	query := `
		SELECT id, user_wallet, action_type, item_kind, item_id, rule_matched, cost, success, created_at
		FROM agent_actions
		WHERE user_wallet = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, userWallet, limit)
	if err != nil {
		return nil, fmt.Errorf("agent actions by user: %w", err)
	}
	defer rows.Close()

	var actions []*domain.AgentAction
	for rows.Next() {
		a, err := scanAgentAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent action row: %w", err)
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent action rows: %w", err)
	}
	return actions, nil
}

// scanAgentAction scans a single row into an AgentAction.
func scanAgentAction(row pgx.Row) (*domain.AgentAction, error) {
	var a domain.AgentAction
	var kind *string
	err := row.Scan(&a.ID, &a.UserWallet, &a.ActionType, &kind, &a.ItemID, &a.RuleMatched, &a.Cost, &a.Success, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if kind != nil {
		k := domain.ItemKind(*kind)
		a.ItemKind = &k
	}
	return &a, nil
}
