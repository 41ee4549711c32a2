package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/logger"
	"github.com/synapse-net/go-backend/pkg/vectormath"
)

const (
	defaultMatchLimit = 20
	// Сколько кандидатов вычитывать сверх limit до фильтрации по порогу.
	proximityOverfetch = 3
	semanticOverfetch  = 2
)

// MatchingUseCase реализует бизнес-логику подбора кандидатов:
// гибридный матчинг по соседним ячейкам и глобальный семантический поиск.
type MatchingUseCase struct {
	profileRepo     ProfileRepository
	interactionRepo InteractionRepository
	goalVectorRepo  GoalVectorRepository
	spatial         SpatialIndex
	logger          logger.Logger
	defaultRings    int
	dimension       int
}

func NewMatchingUC(
	profileRepo ProfileRepository,
	interactionRepo InteractionRepository,
	goalVectorRepo GoalVectorRepository,
	spatial SpatialIndex,
	logger logger.Logger,
	defaultRings int,
	dimension int,
) *MatchingUseCase {
	return &MatchingUseCase{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		goalVectorRepo:  goalVectorRepo,
		spatial:         spatial,
		logger:          logger,
		defaultRings:    defaultRings,
		dimension:       dimension,
	}
}

// FindMatches возвращает кандидатов из соседних ячеек, отсортированных по
// убыванию похожести целей. Без локации или без goal-вектора у запрашивающего
// выдача пуста: матчинг не угадывает, а честно сообщает об отсутствии данных.
func (m *MatchingUseCase) FindMatches(ctx context.Context, req *FindMatchesReq) (*MatchesRes, error) {
	const op = "MatchingUseCase.FindMatches"

	// Валидация
	err := m.validateFindMatches(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	requester, err := m.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !requester.HasLocation() || !requester.HasGoalVector() {
		return NewMatchesRes([]MatchResult{}, ""), nil
	}

	if err := m.checkVectorDimension(requester); err != nil {
		return nil, e.Wrap(op, err)
	}

	cells, err := m.spatial.Ring(*requester.Cell, req.Rings)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	candidates, err := m.profileRepo.ListByCells(ctx, cells, requester.ID, req.Limit*proximityOverfetch)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	matches := make([]*domain.Match, 0, len(candidates))
	for _, candidate := range candidates {
		match, ok, err := m.scoreCandidate(requester, candidate, req.MinSimilarity)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if ok {
			matches = append(matches, match)
		}
	}

	sortMatches(matches)
	if len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	results := make([]MatchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, MatchResult{
			Profile:       newProfileCard(match.Profile),
			SimilarityPct: match.SimilarityPct,
			GridDistance:  match.GridDistance,
			IsNeighbor:    match.IsNeighbor,
		})
	}

	return NewMatchesRes(results, *requester.Cell), nil
}

// FindSemanticMatches ищет ближайшие goal-векторы по всей сети без
// географического фильтра. Требует синхронизированной цели.
func (m *MatchingUseCase) FindSemanticMatches(ctx context.Context, req *SemanticMatchesReq) ([]SemanticMatch, error) {
	const op = "MatchingUseCase.FindSemanticMatches"

	if req.Limit <= 0 {
		req.Limit = defaultMatchLimit
	}
	if req.MinSimilarity < 0 || req.MinSimilarity > 100 {
		return nil, e.Wrap(op, e.ErrInvalidSimilarity)
	}

	requester, err := m.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !requester.HasGoalVector() {
		return nil, e.Wrap(op, e.ErrGoalVectorMissing)
	}

	if err := m.checkVectorDimension(requester); err != nil {
		return nil, e.Wrap(op, err)
	}

	hits, err := m.goalVectorRepo.SearchNearest(ctx, requester.GoalVector, requester.ID, req.Limit*semanticOverfetch)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	type scoredHit struct {
		profileID string
		pct       float64
	}

	scored := make([]scoredHit, 0, len(hits))
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		pct := vectormath.ToPercentage(float64(hit.Score))
		if pct < req.MinSimilarity {
			continue
		}
		scored = append(scored, scoredHit{profileID: hit.ProfileID, pct: pct})
		ids = append(ids, hit.ProfileID)
	}

	profiles, err := m.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	profilesByID := make(map[string]*domain.Profile, len(profiles))
	for _, profile := range profiles {
		profilesByID[profile.ID] = profile
	}

	matches := make([]SemanticMatch, 0, len(scored))
	for _, s := range scored {
		profile, ok := profilesByID[s.profileID]
		if !ok {
			// Точка есть в векторном хранилище, профиля в БД уже нет.
			m.logger.Warnf("semantic match skipped, profile missing in db. profile_id: %s", s.profileID)
			continue
		}
		matches = append(matches, SemanticMatch{
			Profile:       newProfileCard(profile),
			SimilarityPct: s.pct,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SimilarityPct != matches[j].SimilarityPct {
			return matches[i].SimilarityPct > matches[j].SimilarityPct
		}
		return matches[i].Profile.ID < matches[j].Profile.ID
	})
	if len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	return matches, nil
}

// NearbyProfiles возвращает профили из соседних ячеек без порога похожести.
func (m *MatchingUseCase) NearbyProfiles(ctx context.Context, req *NearbyReq) ([]ProfileCard, error) {
	const op = "MatchingUseCase.NearbyProfiles"

	if req.Rings <= 0 {
		req.Rings = m.defaultRings
	}
	if req.Limit <= 0 {
		req.Limit = defaultMatchLimit
	}

	requester, err := m.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !requester.HasLocation() {
		return []ProfileCard{}, nil
	}

	cells, err := m.spatial.Ring(*requester.Cell, req.Rings)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	neighbors, err := m.profileRepo.ListByCells(ctx, cells, requester.ID, req.Limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cards := make([]ProfileCard, 0, len(neighbors))
	for _, neighbor := range neighbors {
		cards = append(cards, newProfileCard(neighbor))
	}

	return cards, nil
}

// Connect создаёт связь между двумя профилями. Связь ненаправленная:
// повторная заявка в любом направлении отклоняется.
func (m *MatchingUseCase) Connect(ctx context.Context, req *ConnectReq) (*ConnectRes, error) {
	const op = "MatchingUseCase.Connect"

	if req.FromUserID == req.ToUserID {
		return nil, e.Wrap(op, e.ErrSelfConnection)
	}

	if _, err := m.profileRepo.GetByID(ctx, req.ToUserID); err != nil {
		return nil, e.Wrap(op, err)
	}

	exists, err := m.interactionRepo.ConnectionExists(ctx, req.FromUserID, req.ToUserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if exists {
		return nil, e.Wrap(op, e.ErrAlreadyConnected)
	}

	interaction, err := m.interactionRepo.Create(
		ctx,
		domain.NewConnectInteraction(uuid.NewString(), req.FromUserID, req.ToUserID),
	)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ConnectRes{ConnectionID: interaction.ID}, nil
}

// ConnectionStatus сообщает, существует ли связь между профилями.
func (m *MatchingUseCase) ConnectionStatus(ctx context.Context, fromID, toID string) (bool, error) {
	const op = "MatchingUseCase.ConnectionStatus"

	exists, err := m.interactionRepo.ConnectionExists(ctx, fromID, toID)
	if err != nil {
		return false, e.Wrap(op, err)
	}

	return exists, nil
}

// scoreCandidate вычисляет процент похожести и сеточное расстояние кандидата.
// Возвращает false, если кандидат не проходит порог или не имеет вектора.
// Вектор чужой размерности в хранилище — порча данных, запрос падает.
func (m *MatchingUseCase) scoreCandidate(requester, candidate *domain.Profile, minSimilarity float64) (*domain.Match, bool, error) {
	if !candidate.HasGoalVector() || !candidate.HasLocation() {
		return nil, false, nil
	}

	if err := m.checkVectorDimension(candidate); err != nil {
		return nil, false, err
	}

	score, err := vectormath.CosineSimilarity(requester.GoalVector, candidate.GoalVector)
	if err != nil {
		return nil, false, err
	}

	pct := vectormath.ToPercentage(score)
	if pct < minSimilarity {
		return nil, false, nil
	}

	distance, err := m.spatial.GridDistance(*requester.Cell, *candidate.Cell)
	if err != nil {
		m.logger.Warnf("grid distance failed, candidate skipped. candidate_id: %s, error: %v", candidate.ID, err)
		return nil, false, nil
	}

	return domain.NewMatch(candidate, pct, distance), true, nil
}

// checkVectorDimension сверяет длину сохранённого goal-вектора с настроенной
// размерностью эмбеддингов.
func (m *MatchingUseCase) checkVectorDimension(profile *domain.Profile) error {
	if len(profile.GoalVector) != m.dimension {
		m.logger.Errorf(e.ErrVectorDimensionCorrupted,
			"stored goal vector has %d dims, configured %d. profile_id: %s",
			len(profile.GoalVector), m.dimension, profile.ID)
		return e.ErrVectorDimensionCorrupted
	}

	return nil
}

func (m *MatchingUseCase) validateFindMatches(req *FindMatchesReq) error {
	if req.Rings <= 0 {
		req.Rings = m.defaultRings
	}
	if req.Limit <= 0 {
		req.Limit = defaultMatchLimit
	}
	if req.MinSimilarity < 0 || req.MinSimilarity > 100 {
		return e.ErrInvalidSimilarity
	}

	return nil
}

// sortMatches упорядочивает по убыванию похожести, при равенстве — по
// возрастанию ID кандидата, чтобы выдача была детерминированной.
func sortMatches(matches []*domain.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SimilarityPct != matches[j].SimilarityPct {
			return matches[i].SimilarityPct > matches[j].SimilarityPct
		}
		return matches[i].Profile.ID < matches[j].Profile.ID
	})
}

func newProfileCard(profile *domain.Profile) ProfileCard {
	return ProfileCard{
		ID:          profile.ID,
		Username:    profile.Username,
		Bio:         profile.Bio,
		CurrentGoal: profile.CurrentGoal,
		ImpactScore: profile.ImpactScore,
	}
}

// nowUTC выделена для стабильности тестов.
var nowUTC = func() time.Time { return time.Now().UTC() }
