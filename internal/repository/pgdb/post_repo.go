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

// PostRepo реализует репозиторий постов поверх PostgreSQL.
type PostRepo struct {
	pool *pgxpool.Pool
	conv converter.PostConverter
}

func NewPostRepo(pool *pgxpool.Pool, conv converter.PostConverter) *PostRepo {
	return &PostRepo{pool: pool, conv: conv}
}

func (p *PostRepo) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `
		INSERT INTO posts (id, author_id, content, content_vector)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, content, content_vector, impact_count, created_at, updated_at
	`

	model, err := scanPost(p.pool.QueryRow(
		ctx, query, post.ID, post.AuthorID, post.Content, vectorParam(post.ContentVector),
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *PostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT id, author_id, content, content_vector, impact_count, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	model, err := scanPost(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPostNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// ListVectored возвращает полный срез кандидатов ранжирования вместе с
// именами авторов. Посты без вектора не попадают в выборку.
func (p *PostRepo) ListVectored(ctx context.Context) ([]usecase.FeedCandidate, error) {
	query := `
		SELECT po.id, po.author_id, pr.username, po.content, po.content_vector,
		       po.impact_count, po.created_at
		FROM posts po
		JOIN profiles pr ON pr.id = po.author_id
		WHERE po.content_vector IS NOT NULL
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return candidates, nil
}

func (p *PostRepo) ListRecent(ctx context.Context, limit, offset int) ([]usecase.FeedCandidate, error) {
	query := `
		SELECT po.id, po.author_id, pr.username, po.content, po.content_vector,
		       po.impact_count, po.created_at
		FROM posts po
		JOIN profiles pr ON pr.id = po.author_id
		ORDER BY po.created_at DESC, po.id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return candidates, nil
}

// IncImpactCount атомарно наращивает счётчик. Вызывается только внутри
// транзакции начисления impact.
func (p *PostRepo) IncImpactCount(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE posts
		SET impact_count = impact_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrPostNotFound)
	}

	return nil
}

func scanPost(row pgx.Row) (*converter.PostModel, error) {
	var model converter.PostModel
	err := row.Scan(
		&model.ID, &model.AuthorID, &model.Content, &model.ContentVector,
		&model.ImpactCount, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func scanCandidates(rows pgx.Rows) ([]usecase.FeedCandidate, error) {
	candidates := make([]usecase.FeedCandidate, 0)
	for rows.Next() {
		var (
			candidate usecase.FeedCandidate
			model     converter.PostModel
		)
		err := rows.Scan(
			&candidate.ID, &candidate.AuthorID, &candidate.AuthorUsername,
			&candidate.Content, &model.ContentVector, &candidate.ImpactCount,
			&candidate.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if model.ContentVector != nil {
			candidate.Vector = model.ContentVector.Slice()
		}

		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}
