package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/internal/repository/pgdb/converter"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/tr"
)

const profileColumns = `
	id, username, bio, current_goal, goal_vector,
	latitude, longitude, cell, impact_score, created_at, updated_at`

// ProfileRepo реализует репозиторий профилей поверх PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
	conv converter.ProfileConverter
}

func NewProfileRepo(pool *pgxpool.Pool, conv converter.ProfileConverter) *ProfileRepo {
	return &ProfileRepo{pool: pool, conv: conv}
}

func (p *ProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	model, err := scanProfile(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProfileNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProfileRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := scanProfiles(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// ListByCells возвращает профили с goal-вектором из перечисленных ячеек.
// Порядок стабилен, кандидаты ранжируются выше по стеку.
func (p *ProfileRepo) ListByCells(ctx context.Context, cells []string, excludeID string, limit int) ([]*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE cell = ANY($1)
		  AND id != $2
		  AND goal_vector IS NOT NULL
		ORDER BY id
		LIMIT $3
	`

	rows, err := p.pool.Query(ctx, query, cells, excludeID, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := scanProfiles(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// UpdateGoal обновляет цель и её вектор одной записью. Вызывается внутри
// транзакции вместе с upsert в векторное хранилище.
func (p *ProfileRepo) UpdateGoal(ctx context.Context, id string, goal string, vector []float32) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE profiles
		SET current_goal = $2, goal_vector = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, goal, vectorParam(vector))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProfileNotFound)
	}

	return nil
}

func (p *ProfileRepo) UpdateLocation(ctx context.Context, id string, latitude, longitude float64, cell string) error {
	query := `
		UPDATE profiles
		SET latitude = $2, longitude = $3, cell = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := p.pool.Exec(ctx, query, id, latitude, longitude, cell)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProfileNotFound)
	}

	return nil
}

// AddImpactScore атомарно наращивает репутацию. Вызывается только внутри
// транзакции начисления impact.
func (p *ProfileRepo) AddImpactScore(ctx context.Context, id string, points int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE profiles
		SET impact_score = impact_score + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, points)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProfileNotFound)
	}

	return nil
}

func (p *ProfileRepo) Stats(ctx context.Context, id string) (*usecase.ProfileStats, error) {
	query := `
		SELECT
			pr.impact_score,
			(SELECT COUNT(*) FROM interactions i
			 WHERE i.type = 'connect' AND (i.from_user_id = pr.id OR i.to_user_id = pr.id)),
			(SELECT COUNT(*) FROM posts po WHERE po.author_id = pr.id)
		FROM profiles pr
		WHERE pr.id = $1
	`

	var stats usecase.ProfileStats
	err := p.pool.QueryRow(ctx, query, id).
		Scan(&stats.ImpactScore, &stats.ConnectionsCount, &stats.PostsCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProfileNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &stats, nil
}

func scanProfile(row pgx.Row) (*converter.ProfileModel, error) {
	var model converter.ProfileModel
	err := row.Scan(
		&model.ID, &model.Username, &model.Bio, &model.CurrentGoal, &model.GoalVector,
		&model.Latitude, &model.Longitude, &model.Cell, &model.ImpactScore,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func scanProfiles(rows pgx.Rows) ([]*converter.ProfileModel, error) {
	var models []*converter.ProfileModel
	for rows.Next() {
		model, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
