package converter

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// ProfileModel представляет запись таблицы profiles в PostgreSQL.
type ProfileModel struct {
	ID          string           `db:"id"`
	Username    string           `db:"username"`
	Bio         *string          `db:"bio"`
	CurrentGoal *string          `db:"current_goal"`
	GoalVector  *pgvector.Vector `db:"goal_vector"`
	Latitude    *float64         `db:"latitude"`
	Longitude   *float64         `db:"longitude"`
	Cell        *string          `db:"cell"`
	ImpactScore int64            `db:"impact_score"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   *time.Time       `db:"updated_at"`
}

// PostModel представляет запись таблицы posts в PostgreSQL.
type PostModel struct {
	ID            string           `db:"id"`
	AuthorID      string           `db:"author_id"`
	Content       string           `db:"content"`
	ContentVector *pgvector.Vector `db:"content_vector"`
	ImpactCount   int64            `db:"impact_count"`
	CreatedAt     time.Time        `db:"created_at"`
	UpdatedAt     *time.Time       `db:"updated_at"`
}

// InteractionModel представляет запись таблицы interactions в PostgreSQL.
type InteractionModel struct {
	ID             string    `db:"id"`
	FromUserID     string    `db:"from_user_id"`
	ToUserID       string    `db:"to_user_id"`
	Type           string    `db:"type"`
	FeedbackText   *string   `db:"feedback_text"`
	IsConstructive *bool     `db:"is_constructive"`
	Reason         *string   `db:"reason"`
	CreatedAt      time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProfileID   string     `db:"profile_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
