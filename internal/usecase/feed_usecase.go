package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/logger"
	"github.com/synapse-net/go-backend/pkg/vectormath"
)

const (
	similarityWeight = 0.8
	popularityWeight = 0.2
	// Насыщение вклада популярности: impact за пределами popularitySaturation
	// балл уже не повышает.
	popularitySaturation = 10.0

	defaultFeedLimit = 20

	feedCuratedByFallback = "Your interests"
	feedSetGoalMessage    = "Set your goal to get personalized feed"
)

// FeedUseCase реализует ранжированную ленту: релевантность цели читателя,
// смешанная с заработанной популярностью поста.
type FeedUseCase struct {
	postRepo        PostRepository
	profileRepo     ProfileRepository
	interactionRepo InteractionRepository
	embedding       EmbeddingInfra
	logger          logger.Logger
	dimension       int
}

func NewFeedUC(
	postRepo PostRepository,
	profileRepo ProfileRepository,
	interactionRepo InteractionRepository,
	embedding EmbeddingInfra,
	logger logger.Logger,
	dimension int,
) *FeedUseCase {
	return &FeedUseCase{
		postRepo:        postRepo,
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		embedding:       embedding,
		logger:          logger,
		dimension:       dimension,
	}
}

// RankFeed возвращает страницу ленты, отсортированной по итоговому баллу:
// 0.8 * похожесть с целью читателя + 0.2 * насыщенная популярность.
// Пагинация применяется после полного ранжирования, поэтому страницы
// консистентны между собой.
func (f *FeedUseCase) RankFeed(ctx context.Context, req *FeedReq) (*FeedRes, error) {
	const op = "FeedUseCase.RankFeed"

	err := validatePagination(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	reader, err := f.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !reader.HasGoalVector() {
		return &FeedRes{Posts: []PostCard{}, TotalCount: 0, CuratedBy: feedSetGoalMessage}, nil
	}

	if len(reader.GoalVector) != f.dimension {
		f.logger.Errorf(e.ErrVectorDimensionCorrupted,
			"stored goal vector has %d dims, configured %d. profile_id: %s",
			len(reader.GoalVector), f.dimension, reader.ID)
		return nil, e.Wrap(op, e.ErrVectorDimensionCorrupted)
	}

	candidates, err := f.postRepo.ListVectored(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Собственные посты читателя тоже участвуют в ранжировании.
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		// Вектор чужой размерности в хранилище — порча данных, лента падает.
		if len(candidate.Vector) != f.dimension {
			f.logger.Errorf(e.ErrVectorDimensionCorrupted,
				"stored content vector has %d dims, configured %d. post_id: %s",
				len(candidate.Vector), f.dimension, candidate.ID)
			return nil, e.Wrap(op, e.ErrVectorDimensionCorrupted)
		}

		similarity, err := vectormath.CosineSimilarity(reader.GoalVector, candidate.Vector)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		pct := vectormath.ToPercentage(similarity)
		scored = append(scored, scoredCandidate{
			candidate: candidate,
			pct:       pct,
			final:     rankScore(pct, candidate.ImpactCount),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].final != scored[j].final {
			return scored[i].final > scored[j].final
		}
		return scored[i].candidate.ID < scored[j].candidate.ID
	})

	total := len(scored)
	page := paginate(scored, req.Offset, req.Limit)

	cards, err := f.buildCards(ctx, reader.ID, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &FeedRes{Posts: cards, TotalCount: total, CuratedBy: curatedBy(reader)}, nil
}

// curatedBy описывает источник персонализации: текст цели читателя,
// если он задан.
func curatedBy(reader *domain.Profile) string {
	if reader.CurrentGoal != nil && *reader.CurrentGoal != "" {
		return *reader.CurrentGoal
	}

	return feedCuratedByFallback
}

// RecentFeed возвращает посты в обратном хронологическом порядке.
// Запасной режим без персонализации, goal-вектор не требуется.
func (f *FeedUseCase) RecentFeed(ctx context.Context, req *FeedReq) ([]PostCard, error) {
	const op = "FeedUseCase.RecentFeed"

	err := validatePagination(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	candidates, err := f.postRepo.ListRecent(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	page := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		page = append(page, scoredCandidate{candidate: candidate})
	}

	cards, err := f.buildCards(ctx, req.UserID, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// В хронологической ленте похожесть не считается.
	for i := range cards {
		cards[i].SimilarityPct = nil
	}

	return cards, nil
}

// CreatePost публикует пост. Эмбеддинг содержимого обязателен: пост без
// вектора невозможно ранжировать, поэтому сбой провайдера — сбой публикации.
func (f *FeedUseCase) CreatePost(ctx context.Context, req *CreatePostReq) (*PostCard, error) {
	const op = "FeedUseCase.CreatePost"

	if strings.TrimSpace(req.Content) == "" {
		return nil, e.Wrap(op, e.ErrContentRequired)
	}

	author, err := f.profileRepo.GetByID(ctx, req.AuthorID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	vector, err := f.embedding.Embed(ctx, req.Content)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	post, err := f.postRepo.Create(ctx, domain.NewPost(uuid.NewString(), author.ID, req.Content, vector))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	card := newPostCard(post, author.Username)

	return &card, nil
}

// GetPost возвращает пост по идентификатору.
func (f *FeedUseCase) GetPost(ctx context.Context, postID string) (*PostCard, error) {
	const op = "FeedUseCase.GetPost"

	post, err := f.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	author, err := f.profileRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	card := newPostCard(post, author.Username)

	return &card, nil
}

type scoredCandidate struct {
	candidate FeedCandidate
	pct       float64
	final     float64
}

// rankScore смешивает похожесть и популярность. pct ∈ [0,100].
func rankScore(pct float64, impactCount int64) float64 {
	popularity := float64(impactCount) / popularitySaturation
	if popularity > 1 {
		popularity = 1
	}

	return similarityWeight*pct/100 + popularityWeight*popularity
}

// buildCards собирает карточки страницы и помечает посты авторов, которым
// читатель уже давал impact.
func (f *FeedUseCase) buildCards(ctx context.Context, readerID string, page []scoredCandidate) ([]PostCard, error) {
	authorIDs := make([]string, 0, len(page))
	for _, s := range page {
		authorIDs = append(authorIDs, s.candidate.AuthorID)
	}

	impacted := map[string]bool{}
	if len(authorIDs) > 0 {
		var err error
		impacted, err = f.interactionRepo.ImpactedAuthors(ctx, readerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	cards := make([]PostCard, 0, len(page))
	for _, s := range page {
		pct := s.pct
		cards = append(cards, PostCard{
			ID:             s.candidate.ID,
			AuthorID:       s.candidate.AuthorID,
			AuthorUsername: s.candidate.AuthorUsername,
			Content:        s.candidate.Content,
			ImpactCount:    s.candidate.ImpactCount,
			CreatedAt:      s.candidate.CreatedAt,
			SimilarityPct:  &pct,
			IsImpactedByMe: impacted[s.candidate.AuthorID],
		})
	}

	return cards, nil
}

func paginate(scored []scoredCandidate, offset, limit int) []scoredCandidate {
	if offset >= len(scored) {
		return nil
	}

	end := offset + limit
	if end > len(scored) {
		end = len(scored)
	}

	return scored[offset:end]
}

func validatePagination(req *FeedReq) error {
	if req.Limit < 0 || req.Offset < 0 {
		return e.ErrInvalidPagination
	}
	if req.Limit == 0 {
		req.Limit = defaultFeedLimit
	}

	return nil
}

func newPostCard(post *domain.Post, authorUsername string) PostCard {
	return PostCard{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: authorUsername,
		Content:        post.Content,
		ImpactCount:    post.ImpactCount,
		CreatedAt:      post.CreatedAt,
	}
}
