package converter

import "github.com/synapse-net/go-backend/internal/usecase"

// ProfileCardConverter преобразует карточки профилей между usecase и моделью Redis.
type ProfileCardConverter struct{}

func NewProfileCardConverter() ProfileCardConverter { return ProfileCardConverter{} }

func (ProfileCardConverter) ToRedisModel(entity *usecase.ProfileCard) *ProfileCardRedisModel {
	return &ProfileCardRedisModel{
		ID:          entity.ID,
		Username:    entity.Username,
		Bio:         entity.Bio,
		CurrentGoal: entity.CurrentGoal,
		ImpactScore: entity.ImpactScore,
	}
}

func (ProfileCardConverter) ToUseCase(model *ProfileCardRedisModel) *usecase.ProfileCard {
	return &usecase.ProfileCard{
		ID:          model.ID,
		Username:    model.Username,
		Bio:         model.Bio,
		CurrentGoal: model.CurrentGoal,
		ImpactScore: model.ImpactScore,
	}
}

func (c ProfileCardConverter) ToArrRedisModel(entities []usecase.ProfileCard) []ProfileCardRedisModel {
	models := make([]ProfileCardRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, *c.ToRedisModel(&entities[i]))
	}
	return models
}
