package qdrant

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
	"github.com/synapse-net/go-backend/internal/cfg"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/e"
)

// GoalVectorRepo репозиторий для работы с goal-векторами в Qdrant
type GoalVectorRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewGoalVectorRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *GoalVectorRepo {
	return &GoalVectorRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет goal-вектор профиля. ID точки равен ID
// профиля, повторная синхронизация цели перезаписывает точку.
func (q *GoalVectorRepo) Upsert(ctx context.Context, point *domain.GoalPoint) error {
	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.CollectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(point.ProfileID),
				Vectors: qdrant.NewVectors(point.Vector...),
				Payload: qdrant.NewValueMap(point.Payload),
			},
		},
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SearchNearest ищет ближайшие goal-векторы по косинусной метрике,
// исключая точку самого запрашивающего.
func (q *GoalVectorRepo) SearchNearest(ctx context.Context, vector []float32, excludeID string, limit int) ([]usecase.VectorHit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		Filter: &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewHasID(qdrant.NewIDUUID(excludeID)),
			},
		},
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make([]usecase.VectorHit, 0, len(points))
	for _, point := range points {
		hits = append(hits, usecase.VectorHit{
			ProfileID: point.GetId().GetUuid(),
			Score:     point.GetScore(),
		})
	}

	return hits, nil
}
