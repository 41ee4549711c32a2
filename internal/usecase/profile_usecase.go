package usecase

import (
	"context"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/logger"
)

// ProfileUseCase реализует управление профилем: синхронизацию цели,
// обновление локации и чтение карточки через кэш.
type ProfileUseCase struct {
	profileRepo    ProfileRepository
	goalVectorRepo GoalVectorRepository
	cacheRepo      CacheRepository
	embedding      EmbeddingInfra
	spatial        SpatialIndex
	dbPool         transaction.Transactional
	logger         logger.Logger
}

func NewProfileUC(
	profileRepo ProfileRepository,
	goalVectorRepo GoalVectorRepository,
	cacheRepo CacheRepository,
	embedding EmbeddingInfra,
	spatial SpatialIndex,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:    profileRepo,
		goalVectorRepo: goalVectorRepo,
		cacheRepo:      cacheRepo,
		embedding:      embedding,
		spatial:        spatial,
		dbPool:         dbPool,
		logger:         logger,
	}
}

// GetProfile возвращает карточку профиля. Сначала кэш, затем БД с фоновым
// прогревом кэша. Ошибка кэша деградирует в чтение из БД.
func (p *ProfileUseCase) GetProfile(ctx context.Context, profileID string) (*ProfileCard, error) {
	const op = "ProfileUseCase.GetProfile"

	cached, err := p.cacheRepo.GetProfiles(ctx, []string{profileID})
	if err == nil {
		if card, ok := cached[profileID]; ok {
			return &card, nil
		}
	}

	profile, err := p.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	card := newProfileCard(profile)

	// Фоновое добавление карточки в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProfiles(bgCtx, []ProfileCard{card}); err != nil {
			p.logger.Warnf("Failed to cache profile in background: %v", e.Wrap(op, err))
		}
	}()

	return &card, nil
}

// SyncGoal пересчитывает goal-вектор по новому тексту цели и атомарно
// обновляет профиль в БД и точку в векторном хранилище.
// Сбой провайдера эмбеддингов оставляет прежнюю цель нетронутой.
func (p *ProfileUseCase) SyncGoal(ctx context.Context, req *SyncGoalReq) (*SyncGoalRes, error) {
	const op = "ProfileUseCase.SyncGoal"

	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		return nil, e.Wrap(op, e.ErrGoalRequired)
	}

	profile, err := p.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	vector, err := p.embedding.Embed(ctx, goal)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	err = p.profileRepo.UpdateGoal(ctx, profile.ID, goal, vector)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Upsert в Qdrant до коммита: если точка не записалась, профиль в БД
	// откатывается и хранилища не расходятся.
	err = p.goalVectorRepo.Upsert(ctx, domain.NewGoalPoint(
		profile.ID, vector, domain.NewGoalPayload(profile.Username, goal),
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if cacheErr := p.cacheRepo.DeleteProfiles(ctx, []string{profile.ID}); cacheErr != nil {
		p.logger.Warnf("Failed to invalidate profile cache: %v", e.Wrap(op, cacheErr))
	}

	return &SyncGoalRes{Goal: goal, VectorUpdated: true}, nil
}

// UpdateLocation переводит координаты в ячейку и сохраняет обе величины.
// Точные координаты наружу не отдаются, только ячейка.
func (p *ProfileUseCase) UpdateLocation(ctx context.Context, req *UpdateLocationReq) (*UpdateLocationRes, error) {
	const op = "ProfileUseCase.UpdateLocation"

	cell, err := p.spatial.ToCell(req.Latitude, req.Longitude)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = p.profileRepo.UpdateLocation(ctx, req.UserID, req.Latitude, req.Longitude, cell)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &UpdateLocationRes{
		Cell:      cell,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}, nil
}

// Stats возвращает агрегаты профиля: репутацию, число связей и постов.
func (p *ProfileUseCase) Stats(ctx context.Context, profileID string) (*ProfileStats, error) {
	const op = "ProfileUseCase.Stats"

	stats, err := p.profileRepo.Stats(ctx, profileID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return stats, nil
}
