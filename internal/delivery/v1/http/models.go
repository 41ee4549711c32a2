package http

import (
	"time"

	"github.com/synapse-net/go-backend/internal/usecase"
)

// Ответы и запросы HTTP-слоя. Точные координаты наружу не отдаются.

type ProfileResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Bio         *string `json:"bio,omitempty"`
	CurrentGoal *string `json:"current_goal,omitempty"`
	ImpactScore int64   `json:"impact_score"`
}

type MatchResponse struct {
	Profile       ProfileResponse `json:"profile"`
	SimilarityPct float64         `json:"similarity_pct"`
	GridDistance  int             `json:"grid_distance"`
	IsNeighbor    bool            `json:"is_neighbor"`
}

type MatchesResponse struct {
	Matches    []MatchResponse `json:"matches"`
	TotalCount int             `json:"total_count"`
	UserCell   string          `json:"user_cell,omitempty"`
}

type SemanticMatchResponse struct {
	Profile       ProfileResponse `json:"profile"`
	SimilarityPct float64         `json:"similarity_pct"`
}

type SemanticMatchesResponse struct {
	Matches    []SemanticMatchResponse `json:"matches"`
	TotalCount int                     `json:"total_count"`
}

type NearbyResponse struct {
	Profiles   []ProfileResponse `json:"profiles"`
	TotalCount int               `json:"total_count"`
}

type ConnectResponse struct {
	ConnectionID string `json:"connection_id"`
}

type ConnectionStatusResponse struct {
	Connected bool `json:"connected"`
}

type SyncGoalRequest struct {
	Goal string `json:"goal"`
}

type SyncGoalResponse struct {
	Goal          string `json:"goal"`
	VectorUpdated bool   `json:"vector_updated"`
}

type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type UpdateLocationResponse struct {
	Cell string `json:"cell"`
}

type StatsResponse struct {
	ImpactScore      int64 `json:"impact_score"`
	ConnectionsCount int64 `json:"connections_count"`
	PostsCount       int64 `json:"posts_count"`
}

type PostResponse struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	ImpactCount    int64     `json:"impact_count"`
	CreatedAt      time.Time `json:"created_at"`
	SimilarityPct  *float64  `json:"similarity_pct,omitempty"`
	IsImpactedByMe bool      `json:"is_impacted_by_me"`
}

type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	TotalCount int            `json:"total_count"`
	CuratedBy  string         `json:"curated_by"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type GiveImpactRequest struct {
	ToUserID string  `json:"to_user_id"`
	PostID   *string `json:"post_id,omitempty"`
	Feedback string  `json:"feedback"`
}

type GiveImpactResponse struct {
	Message         string `json:"message"`
	IsConstructive  bool   `json:"is_constructive"`
	Points          int    `json:"points"`
	Reason          string `json:"reason"`
	PostImpactCount *int64 `json:"post_impact_count,omitempty"`
}

func NewProfileResponse(card usecase.ProfileCard) ProfileResponse {
	return ProfileResponse{
		ID:          card.ID,
		Username:    card.Username,
		Bio:         card.Bio,
		CurrentGoal: card.CurrentGoal,
		ImpactScore: card.ImpactScore,
	}
}

func NewMatchesResponse(res *usecase.MatchesRes) MatchesResponse {
	matches := make([]MatchResponse, 0, len(res.Matches))
	for _, m := range res.Matches {
		matches = append(matches, MatchResponse{
			Profile:       NewProfileResponse(m.Profile),
			SimilarityPct: m.SimilarityPct,
			GridDistance:  m.GridDistance,
			IsNeighbor:    m.IsNeighbor,
		})
	}

	return MatchesResponse{
		Matches:    matches,
		TotalCount: res.TotalCount,
		UserCell:   res.UserCell,
	}
}

func NewSemanticMatchesResponse(matches []usecase.SemanticMatch) SemanticMatchesResponse {
	result := make([]SemanticMatchResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, SemanticMatchResponse{
			Profile:       NewProfileResponse(m.Profile),
			SimilarityPct: m.SimilarityPct,
		})
	}

	return SemanticMatchesResponse{Matches: result, TotalCount: len(result)}
}

func NewNearbyResponse(cards []usecase.ProfileCard) NearbyResponse {
	profiles := make([]ProfileResponse, 0, len(cards))
	for _, card := range cards {
		profiles = append(profiles, NewProfileResponse(card))
	}

	return NearbyResponse{Profiles: profiles, TotalCount: len(profiles)}
}

func NewPostResponse(card usecase.PostCard) PostResponse {
	return PostResponse{
		ID:             card.ID,
		AuthorID:       card.AuthorID,
		AuthorUsername: card.AuthorUsername,
		Content:        card.Content,
		ImpactCount:    card.ImpactCount,
		CreatedAt:      card.CreatedAt,
		SimilarityPct:  card.SimilarityPct,
		IsImpactedByMe: card.IsImpactedByMe,
	}
}

func NewFeedResponse(res *usecase.FeedRes) FeedResponse {
	posts := make([]PostResponse, 0, len(res.Posts))
	for _, card := range res.Posts {
		posts = append(posts, NewPostResponse(card))
	}

	return FeedResponse{
		Posts:      posts,
		TotalCount: res.TotalCount,
		CuratedBy:  res.CuratedBy,
	}
}

func NewGiveImpactResponse(res *usecase.GiveImpactRes) GiveImpactResponse {
	return GiveImpactResponse{
		Message:         res.Message,
		IsConstructive:  res.IsConstructive,
		Points:          res.Points,
		Reason:          res.Reason,
		PostImpactCount: res.PostImpactCount,
	}
}
