package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/internal/metrics"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/logger"
)

const (
	// Границы начисления impact: развёрнутый конструктивный фидбек ценится выше.
	impactPointsNone     = 0
	impactPointsBase     = 1
	impactPointsDetailed = 2
	detailedFeedbackLen  = 200
)

// ImpactUseCase реализует начисление репутации за конструктивный фидбек.
// Все изменения счётчиков проходят через одну транзакцию вместе с записью
// взаимодействия и outbox-событием.
type ImpactUseCase struct {
	profileRepo     ProfileRepository
	postRepo        PostRepository
	interactionRepo InteractionRepository
	outboxRepo      OutboxRepository
	cacheRepo       CacheRepository
	classifier      FeedbackClassifier
	dbPool          transaction.Transactional
	logger          logger.Logger
}

func NewImpactUC(
	profileRepo ProfileRepository,
	postRepo PostRepository,
	interactionRepo InteractionRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	classifier FeedbackClassifier,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ImpactUseCase {
	return &ImpactUseCase{
		profileRepo:     profileRepo,
		postRepo:        postRepo,
		interactionRepo: interactionRepo,
		outboxRepo:      outboxRepo,
		cacheRepo:       cacheRepo,
		classifier:      classifier,
		dbPool:          dbPool,
		logger:          logger,
	}
}

// GiveImpact обрабатывает фидбек: классифицирует текст, начисляет очки
// получателю и счётчик посту, записывает взаимодействие. Неконструктивный
// фидбек тоже фиксируется, но очков не приносит.
func (i *ImpactUseCase) GiveImpact(ctx context.Context, req *GiveImpactReq) (*GiveImpactRes, error) {
	const op = "ImpactUseCase.GiveImpact"

	// Валидация
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, e.Wrap(op, e.ErrFeedbackRequired)
	}
	if req.FromUserID == req.ToUserID {
		return nil, e.Wrap(op, e.ErrSelfFeedback)
	}

	if _, err := i.profileRepo.GetByID(ctx, req.ToUserID); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Пост, если задан, должен существовать и принадлежать получателю.
	var post *domain.Post
	if req.PostID != nil {
		var err error
		post, err = i.postRepo.GetByID(ctx, *req.PostID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if post.AuthorID != req.ToUserID {
			return nil, e.Wrap(op, e.ErrStatusBadRequest)
		}
		if post.AuthorID == req.FromUserID {
			return nil, e.Wrap(op, e.ErrSelfFeedback)
		}
	}

	constructive, reason := i.classifier.Classify(ctx, req.Feedback)
	points := calculateImpactPoints(constructive, utf8.RuneCountInString(req.Feedback))
	metrics.ImpactVerdictsTotal.WithLabelValues(verdictLabel(constructive)).Inc()

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if points > 0 {
		err = i.profileRepo.AddImpactScore(ctx, req.ToUserID, int64(points))
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		if post != nil {
			err = i.postRepo.IncImpactCount(ctx, post.ID)
			if err != nil {
				return nil, e.Wrap(op, err)
			}
		}
	}

	// Запись взаимодействия создаётся всегда, включая неконструктивный фидбек.
	interaction := domain.NewImpactInteraction(
		uuid.NewString(), req.FromUserID, req.ToUserID, req.Feedback, constructive, reason,
	)
	interaction, err = i.interactionRepo.Create(ctx, interaction)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if points > 0 {
		err = i.createOutboxEvent(ctx, req, interaction, points, constructive, reason)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if points > 0 {
		metrics.ImpactPointsAwardedTotal.Add(float64(points))
	}

	// Карточка получателя в кэше устарела вместе с ImpactScore.
	if points > 0 {
		if cacheErr := i.cacheRepo.DeleteProfiles(ctx, []string{req.ToUserID}); cacheErr != nil {
			i.logger.Warnf("Failed to invalidate profile cache: %v", e.Wrap(op, cacheErr))
		}
	}

	res := &GiveImpactRes{
		Message:        impactMessage(constructive, points),
		IsConstructive: constructive,
		Points:         points,
		Reason:         reason,
	}
	if post != nil {
		count := post.ImpactCount
		if points > 0 {
			count++
		}
		res.PostImpactCount = &count
	}

	return res, nil
}

// createOutboxEvent сохраняет impact.awarded в outbox внутри текущей транзакции.
func (i *ImpactUseCase) createOutboxEvent(
	ctx context.Context,
	req *GiveImpactReq,
	interaction *domain.Interaction,
	points int,
	constructive bool,
	reason string,
) error {
	payload, err := json.Marshal(ImpactEventPayload{
		EventID:        interaction.ID,
		FromUserID:     req.FromUserID,
		ToUserID:       req.ToUserID,
		PostID:         req.PostID,
		Points:         points,
		IsConstructive: constructive,
		Reason:         reason,
		CreatedAt:      nowUTC(),
	})
	if err != nil {
		return err
	}

	_, err = i.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:   interaction.ID,
		EventType: OutboxEventImpactAwarded,
		ProfileID: req.ToUserID,
		Payload:   payload,
		Status:    OutboxStatusPending,
	})

	return err
}

// calculateImpactPoints начисляет очки по вердикту классификатора и длине
// текста в символах: 0 за неконструктивный, 1 за конструктивный, 2 за
// развёрнутый.
func calculateImpactPoints(constructive bool, feedbackLen int) int {
	if !constructive {
		return impactPointsNone
	}
	if feedbackLen > detailedFeedbackLen {
		return impactPointsDetailed
	}

	return impactPointsBase
}

func verdictLabel(constructive bool) string {
	if constructive {
		return "constructive"
	}

	return "not_constructive"
}

func impactMessage(constructive bool, points int) string {
	if !constructive {
		return "Feedback recorded, but no impact points were awarded"
	}

	return fmt.Sprintf("Impact delivered! +%d points", points)
}
