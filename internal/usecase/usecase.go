package usecase

import "context"

type MatchingUC interface {
	FindMatches(ctx context.Context, req *FindMatchesReq) (*MatchesRes, error)
	FindSemanticMatches(ctx context.Context, req *SemanticMatchesReq) ([]SemanticMatch, error)
	NearbyProfiles(ctx context.Context, req *NearbyReq) ([]ProfileCard, error)
	Connect(ctx context.Context, req *ConnectReq) (*ConnectRes, error)
	ConnectionStatus(ctx context.Context, fromID, toID string) (bool, error)
}

type FeedUC interface {
	RankFeed(ctx context.Context, req *FeedReq) (*FeedRes, error)
	RecentFeed(ctx context.Context, req *FeedReq) ([]PostCard, error)
	CreatePost(ctx context.Context, req *CreatePostReq) (*PostCard, error)
	GetPost(ctx context.Context, postID string) (*PostCard, error)
}

type ImpactUC interface {
	GiveImpact(ctx context.Context, req *GiveImpactReq) (*GiveImpactRes, error)
}

type ProfileUC interface {
	GetProfile(ctx context.Context, profileID string) (*ProfileCard, error)
	SyncGoal(ctx context.Context, req *SyncGoalReq) (*SyncGoalRes, error)
	UpdateLocation(ctx context.Context, req *UpdateLocationReq) (*UpdateLocationRes, error)
	Stats(ctx context.Context, profileID string) (*ProfileStats, error)
}
