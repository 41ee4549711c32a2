package usecase

import "time"

// MATCHING USECASE

// FindMatchesReq — запрос гибридного матчинга (близость + семантика).
type FindMatchesReq struct {
	UserID        string
	Rings         int
	MinSimilarity float64
	Limit         int
}

// MatchResult — один кандидат с процентом совпадения и сеточным расстоянием.
type MatchResult struct {
	Profile       ProfileCard
	SimilarityPct float64
	GridDistance  int
	IsNeighbor    bool
}

// MatchesRes — ответ гибридного матчинга.
type MatchesRes struct {
	Matches    []MatchResult
	TotalCount int
	UserCell   string
}

// SemanticMatchesReq — запрос глобального семантического матчинга.
type SemanticMatchesReq struct {
	UserID        string
	Limit         int
	MinSimilarity float64
}

// SemanticMatch — кандидат глобального матчинга (без географии).
type SemanticMatch struct {
	Profile       ProfileCard
	SimilarityPct float64
}

// NearbyReq — запрос соседей по ячейкам без фильтра похожести.
type NearbyReq struct {
	UserID string
	Rings  int
	Limit  int
}

// VectorHit — результат поиска в векторном хранилище.
type VectorHit struct {
	ProfileID string
	Score     float32 // косинусная близость [-1,1]
}

type ConnectReq struct {
	FromUserID string
	ToUserID   string
}

type ConnectRes struct {
	ConnectionID string
}

// PROFILE USECASE

// ProfileCard — публичная карточка профиля для внешнего использования.
type ProfileCard struct {
	ID          string
	Username    string
	Bio         *string
	CurrentGoal *string
	ImpactScore int64
}

type SyncGoalReq struct {
	UserID string
	Goal   string
}

type SyncGoalRes struct {
	Goal          string
	VectorUpdated bool
}

type UpdateLocationReq struct {
	UserID    string
	Latitude  float64
	Longitude float64
}

type UpdateLocationRes struct {
	Cell      string
	Latitude  float64
	Longitude float64
}

// ProfileStats — статистика профиля для дашборда.
type ProfileStats struct {
	ImpactScore      int64
	ConnectionsCount int64
	PostsCount       int64
}

// FEED USECASE

type FeedReq struct {
	UserID string
	Limit  int
	Offset int
}

// PostCard — пост для внешнего использования. SimilarityPct заполняется
// только в ранжированной ленте.
type PostCard struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Content        string
	ImpactCount    int64
	CreatedAt      time.Time
	SimilarityPct  *float64
	IsImpactedByMe bool
}

// FeedRes — ранжированная лента. CuratedBy — подсказка пользователю,
// чем курируется выдача (или призыв синхронизировать цель).
type FeedRes struct {
	Posts      []PostCard
	TotalCount int
	CuratedBy  string
}

// FeedCandidate — кандидат ранжирования: пост с вектором и счётчиком impact.
type FeedCandidate struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Content        string
	Vector         []float32
	ImpactCount    int64
	CreatedAt      time.Time
}

type CreatePostReq struct {
	AuthorID string
	Content  string
}

// IMPACT USECASE

// GiveImpactReq — заявка на фидбек. PostID задан, если фидбек привязан к посту.
type GiveImpactReq struct {
	FromUserID string
	ToUserID   string
	PostID     *string
	Feedback   string
}

type GiveImpactRes struct {
	Message         string
	IsConstructive  bool
	Points          int
	Reason          string
	PostImpactCount *int64
}

// OUTBOX

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusProcessed  OutboxStatus = "processed"
)

type OutboxEventType string

const OutboxEventImpactAwarded OutboxEventType = "impact.awarded"

// OutboxEvent — событие для публикации в Kafka, записывается в одной
// транзакции с изменением счётчиков.
type OutboxEvent struct {
	ID        int64
	EventID   string // uuid
	EventType OutboxEventType
	ProfileID string // получатель impact, ключ партиционирования
	Payload   []byte
	Status    OutboxStatus
	CreatedAt time.Time
}

// ImpactEventPayload — JSON-тело события impact.awarded.
type ImpactEventPayload struct {
	EventID        string    `json:"event_id"`
	FromUserID     string    `json:"from_user_id"`
	ToUserID       string    `json:"to_user_id"`
	PostID         *string   `json:"post_id,omitempty"`
	Points         int       `json:"points"`
	IsConstructive bool      `json:"is_constructive"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// MAPPERS

func NewFindMatchesReq(userID string, rings int, minSimilarity float64, limit int) *FindMatchesReq {
	return &FindMatchesReq{
		UserID:        userID,
		Rings:         rings,
		MinSimilarity: minSimilarity,
		Limit:         limit,
	}
}

func NewMatchesRes(matches []MatchResult, userCell string) *MatchesRes {
	return &MatchesRes{
		Matches:    matches,
		TotalCount: len(matches),
		UserCell:   userCell,
	}
}

func NewSemanticMatchesReq(userID string, limit int, minSimilarity float64) *SemanticMatchesReq {
	return &SemanticMatchesReq{
		UserID:        userID,
		Limit:         limit,
		MinSimilarity: minSimilarity,
	}
}

func NewGiveImpactReq(fromUserID, toUserID string, postID *string, feedback string) *GiveImpactReq {
	return &GiveImpactReq{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PostID:     postID,
		Feedback:   feedback,
	}
}

func NewFeedReq(userID string, limit, offset int) *FeedReq {
	return &FeedReq{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
