package usecase

import (
	"context"

	"github.com/synapse-net/go-backend/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error)
	// ListByCells возвращает профили с goal-вектором из перечисленных ячеек,
	// исключая excludeID. limit ограничивает выборку на стороне хранилища.
	ListByCells(ctx context.Context, cells []string, excludeID string, limit int) ([]*domain.Profile, error)
	UpdateGoal(ctx context.Context, id string, goal string, vector []float32) error
	UpdateLocation(ctx context.Context, id string, latitude, longitude float64, cell string) error
	// AddImpactScore атомарно увеличивает репутацию (SET score = score + $n).
	AddImpactScore(ctx context.Context, id string, points int64) error
	Stats(ctx context.Context, id string) (*ProfileStats, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// ListVectored возвращает все посты с вектором содержимого —
	// полный срез кандидатов ранжирования.
	ListVectored(ctx context.Context) ([]FeedCandidate, error)
	ListRecent(ctx context.Context, limit, offset int) ([]FeedCandidate, error)
	// IncImpactCount атомарно увеличивает счётчик популярности на 1.
	IncImpactCount(ctx context.Context, id string) error
}

type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error)
	// ConnectionExists проверяет связь в любом направлении.
	ConnectionExists(ctx context.Context, a, b string) (bool, error)
	// ImpactedAuthors возвращает авторов из authorIDs, которым fromID уже
	// давал impact.
	ImpactedAuthors(ctx context.Context, fromID string, authorIDs []string) (map[string]bool, error)
}

// GoalVectorRepository — векторное хранилище goal-векторов (Qdrant).
type GoalVectorRepository interface {
	Upsert(ctx context.Context, point *domain.GoalPoint) error
	// SearchNearest — поиск ближайших по косинусной метрике, исключая excludeID.
	SearchNearest(ctx context.Context, vector []float32, excludeID string, limit int) ([]VectorHit, error)
}

type CacheRepository interface {
	GetProfiles(ctx context.Context, ids []string) (map[string]ProfileCard, error)
	SetProfiles(ctx context.Context, cards []ProfileCard) error
	DeleteProfiles(ctx context.Context, ids []string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
