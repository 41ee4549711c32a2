package domain

import "time"

// InteractionType — тип взаимодействия между профилями.
type InteractionType string

const (
	InteractionImpact  InteractionType = "impact"
	InteractionConnect InteractionType = "connect"
)

// Interaction — append-only запись взаимодействия.
// Для impact хранит текст фидбека и вердикт классификатора; создание такой
// записи — единственный путь изменения счётчиков репутации.
// FromUserID != ToUserID — инвариант, проверяемый до создания.
type Interaction struct {
	ID             string // uuid
	FromUserID     string
	ToUserID       string
	Type           InteractionType
	FeedbackText   *string
	IsConstructive *bool
	Reason         *string
	CreatedAt      time.Time
}

func NewImpactInteraction(id, fromUserID, toUserID, feedback string, constructive bool, reason string) *Interaction {
	return &Interaction{
		ID:             id,
		FromUserID:     fromUserID,
		ToUserID:       toUserID,
		Type:           InteractionImpact,
		FeedbackText:   &feedback,
		IsConstructive: &constructive,
		Reason:         &reason,
	}
}

func NewConnectInteraction(id, fromUserID, toUserID string) *Interaction {
	return &Interaction{
		ID:         id,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Type:       InteractionConnect,
	}
}
