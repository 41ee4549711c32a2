package converter

import (
	"github.com/pgvector/pgvector-go"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/internal/usecase"
)

// Конвертеры написаны вручную: pgvector.Vector не отображается на []float32
// автоматикой, а остальные поля тривиальны.

// ProfileConverter преобразует сущности Profile между domain и моделью PostgreSQL.
type ProfileConverter struct{}

func NewProfileConverter() ProfileConverter { return ProfileConverter{} }

func (ProfileConverter) ToModel(entity *domain.Profile) *ProfileModel {
	return &ProfileModel{
		ID:          entity.ID,
		Username:    entity.Username,
		Bio:         entity.Bio,
		CurrentGoal: entity.CurrentGoal,
		GoalVector:  vectorToModel(entity.GoalVector),
		Latitude:    entity.Latitude,
		Longitude:   entity.Longitude,
		Cell:        entity.Cell,
		ImpactScore: entity.ImpactScore,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (ProfileConverter) ToEntity(model *ProfileModel) *domain.Profile {
	return &domain.Profile{
		ID:          model.ID,
		Username:    model.Username,
		Bio:         model.Bio,
		CurrentGoal: model.CurrentGoal,
		GoalVector:  vectorToSlice(model.GoalVector),
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Cell:        model.Cell,
		ImpactScore: model.ImpactScore,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (c ProfileConverter) ToArrEntity(models []*ProfileModel) []*domain.Profile {
	entities := make([]*domain.Profile, 0, len(models))
	for _, model := range models {
		entities = append(entities, c.ToEntity(model))
	}
	return entities
}

// PostConverter преобразует сущности Post между domain и моделью PostgreSQL.
type PostConverter struct{}

func NewPostConverter() PostConverter { return PostConverter{} }

func (PostConverter) ToModel(entity *domain.Post) *PostModel {
	return &PostModel{
		ID:            entity.ID,
		AuthorID:      entity.AuthorID,
		Content:       entity.Content,
		ContentVector: vectorToModel(entity.ContentVector),
		ImpactCount:   entity.ImpactCount,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (PostConverter) ToEntity(model *PostModel) *domain.Post {
	return &domain.Post{
		ID:            model.ID,
		AuthorID:      model.AuthorID,
		Content:       model.Content,
		ContentVector: vectorToSlice(model.ContentVector),
		ImpactCount:   model.ImpactCount,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// InteractionConverter преобразует сущности Interaction между domain и моделью PostgreSQL.
type InteractionConverter struct{}

func NewInteractionConverter() InteractionConverter { return InteractionConverter{} }

func (InteractionConverter) ToModel(entity *domain.Interaction) *InteractionModel {
	return &InteractionModel{
		ID:             entity.ID,
		FromUserID:     entity.FromUserID,
		ToUserID:       entity.ToUserID,
		Type:           string(entity.Type),
		FeedbackText:   entity.FeedbackText,
		IsConstructive: entity.IsConstructive,
		Reason:         entity.Reason,
		CreatedAt:      entity.CreatedAt,
	}
}

func (InteractionConverter) ToEntity(model *InteractionModel) *domain.Interaction {
	return &domain.Interaction{
		ID:             model.ID,
		FromUserID:     model.FromUserID,
		ToUserID:       model.ToUserID,
		Type:           domain.InteractionType(model.Type),
		FeedbackText:   model.FeedbackText,
		IsConstructive: model.IsConstructive,
		Reason:         model.Reason,
		CreatedAt:      model.CreatedAt,
	}
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter { return OutboxEventConverter{} }

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:        entity.ID,
		EventID:   entity.EventID,
		EventType: string(entity.EventType),
		ProfileID: entity.ProfileID,
		Payload:   entity.Payload,
		Status:    string(entity.Status),
		CreatedAt: entity.CreatedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:        model.ID,
		EventID:   model.EventID,
		EventType: usecase.OutboxEventType(model.EventType),
		ProfileID: model.ProfileID,
		Payload:   model.Payload,
		Status:    usecase.OutboxStatus(model.Status),
		CreatedAt: model.CreatedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	entities := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		entities = append(entities, c.ToEntity(model))
	}
	return entities
}

func vectorToModel(v []float32) *pgvector.Vector {
	if v == nil {
		return nil
	}
	vec := pgvector.NewVector(v)
	return &vec
}

func vectorToSlice(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}
