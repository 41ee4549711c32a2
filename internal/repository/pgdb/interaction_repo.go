package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/internal/repository/pgdb/converter"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/tr"
)

// InteractionRepo реализует append-only журнал взаимодействий поверх PostgreSQL.
type InteractionRepo struct {
	pool *pgxpool.Pool
	conv converter.InteractionConverter
}

func NewInteractionRepo(pool *pgxpool.Pool, conv converter.InteractionConverter) *InteractionRepo {
	return &InteractionRepo{pool: pool, conv: conv}
}

// Create пишет запись в журнал. Для impact вызывается внутри транзакции
// начисления, для connect — вне транзакции, поэтому берёт tx из контекста
// с откатом на пул.
func (i *InteractionRepo) Create(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	model := i.conv.ToModel(interaction)
	query := `
		INSERT INTO interactions (id, from_user_id, to_user_id, type, feedback_text, is_constructive, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	args := []any{
		model.ID, model.FromUserID, model.ToUserID, model.Type,
		model.FeedbackText, model.IsConstructive, model.Reason,
	}

	var err error
	if tx, txErr := tr.TxFromCtx(ctx); txErr == nil {
		err = tx.QueryRow(ctx, query, args...).Scan(&model.CreatedAt)
	} else {
		err = i.pool.QueryRow(ctx, query, args...).Scan(&model.CreatedAt)
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.conv.ToEntity(model), nil
}

// ConnectionExists проверяет связь между профилями в любом направлении.
func (i *InteractionRepo) ConnectionExists(ctx context.Context, a, b string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interactions
			WHERE type = 'connect'
			  AND ((from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1))
		)
	`

	var exists bool
	if err := i.pool.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// ImpactedAuthors возвращает авторов из authorIDs, которым fromID уже давал impact.
func (i *InteractionRepo) ImpactedAuthors(ctx context.Context, fromID string, authorIDs []string) (map[string]bool, error) {
	query := `
		SELECT DISTINCT to_user_id
		FROM interactions
		WHERE type = 'impact'
		  AND from_user_id = $1
		  AND to_user_id = ANY($2)
	`

	rows, err := i.pool.Query(ctx, query, fromID, authorIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	impacted := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		impacted[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return impacted, nil
}
