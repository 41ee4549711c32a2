package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/synapse-net/go-backend/pkg/e"
)

func newFeedForTest(posts *fakePostRepo, profiles *fakeProfileRepo, interactions *fakeInteractionRepo, embedder *fakeEmbedder) *FeedUseCase {
	if interactions == nil {
		interactions = newFakeInteractionRepo()
	}
	if embedder == nil {
		embedder = &fakeEmbedder{vector: []float32{1, 0}}
	}
	return NewFeedUC(posts, profiles, interactions, embedder, nopLogger{}, 2)
}

func feedCandidate(id, authorID string, vector []float32, impact int64) FeedCandidate {
	return FeedCandidate{
		ID:          id,
		AuthorID:    authorID,
		Content:     "post " + id,
		Vector:      vector,
		ImpactCount: impact,
		CreatedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRankFeed_NoGoalVectorReturnsPrompt(t *testing.T) {
	reader := profileWith("user-a", "alice", "", nil)
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{feedCandidate("post-1", "user-b", []float32{1, 0}, 0)}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Posts) != 0 {
		t.Errorf("posts = %+v, want empty", res.Posts)
	}
	if res.CuratedBy != "Set your goal to get personalized feed" {
		t.Errorf("CuratedBy = %q", res.CuratedBy)
	}
}

func TestRankFeed_IncludesOwnPosts(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{
		feedCandidate("post-1", "user-a", []float32{1, 0}, 0),
		feedCandidate("post-2", "user-b", []float32{1, 0}, 0),
	}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Posts) != 2 {
		t.Fatalf("posts = %+v, want both posts ranked", res.Posts)
	}
	found := false
	for _, post := range res.Posts {
		if post.ID == "post-1" {
			found = true
		}
	}
	if !found {
		t.Error("reader's own post must participate in ranking")
	}
}

func TestRankFeed_CuratedByEchoesGoal(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	reader.CurrentGoal = strPtr("learn distributed systems")
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{feedCandidate("post-1", "user-b", []float32{1, 0}, 0)}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CuratedBy != "learn distributed systems" {
		t.Errorf("CuratedBy = %q, want the reader's goal text", res.CuratedBy)
	}
}

func TestRankFeed_CuratedByFallsBackWithoutGoalText(t *testing.T) {
	// Вектор есть, а текст цели пуст: отдаём нейтральную подпись.
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{feedCandidate("post-1", "user-b", []float32{1, 0}, 0)}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CuratedBy != "Your interests" {
		t.Errorf("CuratedBy = %q, want %q", res.CuratedBy, "Your interests")
	}
}

func TestRankFeed_CorruptedContentVectorFailsRequest(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{feedCandidate("post-1", "user-b", []float32{1, 0, 0}, 0)}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	_, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if !errors.Is(err, e.ErrVectorDimensionCorrupted) {
		t.Fatalf("err = %v, want ErrVectorDimensionCorrupted", err)
	}
}

func TestRankFeed_CorruptedReaderVectorFailsRequest(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0, 0})
	uc := newFeedForTest(newFakePostRepo(), newFakeProfileRepo(reader), nil, nil)

	_, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if !errors.Is(err, e.ErrVectorDimensionCorrupted) {
		t.Fatalf("err = %v, want ErrVectorDimensionCorrupted", err)
	}
}

func TestRankFeed_MoreSimilarPostRanksHigher(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{
		feedCandidate("post-weak", "user-b", []float32{1, 1}, 0),
		feedCandidate("post-strong", "user-c", []float32{1, 0}, 0),
	}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(res.Posts))
	}
	if res.Posts[0].ID != "post-strong" {
		t.Errorf("first = %s, want post-strong", res.Posts[0].ID)
	}
}

func TestRankFeed_PopularityBreaksEqualSimilarity(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{
		feedCandidate("post-cold", "user-b", []float32{1, 0}, 0),
		feedCandidate("post-hot", "user-c", []float32{1, 0}, 5),
	}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Posts[0].ID != "post-hot" {
		t.Errorf("first = %s, want post-hot", res.Posts[0].ID)
	}
}

func TestRankFeed_PopularitySaturates(t *testing.T) {
	// За пределом насыщения impact больше не влияет на балл.
	saturated := rankScore(80, 10)
	overSaturated := rankScore(80, 1000)
	if saturated != overSaturated {
		t.Errorf("rankScore(80,10) = %v, rankScore(80,1000) = %v, want equal", saturated, overSaturated)
	}

	below := rankScore(80, 5)
	if below >= saturated {
		t.Errorf("rankScore(80,5) = %v must be below saturation %v", below, saturated)
	}
}

func TestRankFeed_PaginationAfterFullRanking(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{
		feedCandidate("post-1", "user-b", []float32{1, 0}, 9),
		feedCandidate("post-2", "user-c", []float32{1, 0}, 6),
		feedCandidate("post-3", "user-d", []float32{1, 0}, 3),
	}
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), nil, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 2, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want full ranked set size 3", res.TotalCount)
	}
	if len(res.Posts) != 2 || res.Posts[0].ID != "post-1" || res.Posts[1].ID != "post-2" {
		t.Fatalf("page 1 = %+v", res.Posts)
	}

	res2, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res2.Posts) != 1 || res2.Posts[0].ID != "post-3" {
		t.Fatalf("page 2 = %+v, want [post-3]", res2.Posts)
	}
}

func TestRankFeed_MarksImpactedAuthors(t *testing.T) {
	reader := profileWith("user-a", "alice", "", []float32{1, 0})
	posts := newFakePostRepo()
	posts.vectored = []FeedCandidate{
		feedCandidate("post-1", "user-b", []float32{1, 0}, 0),
		feedCandidate("post-2", "user-c", []float32{1, 0}, 0),
	}
	interactions := newFakeInteractionRepo()
	interactions.impacted["user-b"] = true
	uc := newFeedForTest(posts, newFakeProfileRepo(reader), interactions, nil)

	res, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, post := range res.Posts {
		want := post.AuthorID == "user-b"
		if post.IsImpactedByMe != want {
			t.Errorf("post %s IsImpactedByMe = %v, want %v", post.ID, post.IsImpactedByMe, want)
		}
	}
}

func TestRankFeed_NegativePaginationRejected(t *testing.T) {
	uc := newFeedForTest(newFakePostRepo(), newFakeProfileRepo(), nil, nil)

	_, err := uc.RankFeed(context.Background(), NewFeedReq("user-a", -1, 0))
	if !errors.Is(err, e.ErrInvalidPagination) {
		t.Fatalf("err = %v, want ErrInvalidPagination", err)
	}
}

func TestRecentFeed_NoSimilarity(t *testing.T) {
	posts := newFakePostRepo()
	posts.recent = []FeedCandidate{feedCandidate("post-1", "user-b", nil, 0)}
	uc := newFeedForTest(posts, newFakeProfileRepo(), nil, nil)

	cards, err := uc.RecentFeed(context.Background(), NewFeedReq("user-a", 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	if cards[0].SimilarityPct != nil {
		t.Error("recent feed must not carry similarity")
	}
}

func TestCreatePost_EmptyContentRejected(t *testing.T) {
	uc := newFeedForTest(newFakePostRepo(), newFakeProfileRepo(), nil, nil)

	_, err := uc.CreatePost(context.Background(), &CreatePostReq{AuthorID: "user-a", Content: "   "})
	if !errors.Is(err, e.ErrContentRequired) {
		t.Fatalf("err = %v, want ErrContentRequired", err)
	}
}

func TestCreatePost_EmbeddingFailureFailsPublication(t *testing.T) {
	author := profileWith("user-a", "alice", "", nil)
	posts := newFakePostRepo()
	embedder := &fakeEmbedder{err: e.ErrEmbeddingUnavailable}
	uc := newFeedForTest(posts, newFakeProfileRepo(author), nil, embedder)

	_, err := uc.CreatePost(context.Background(), &CreatePostReq{AuthorID: "user-a", Content: "learning go"})
	if !errors.Is(err, e.ErrEmbeddingUnavailable) {
		t.Fatalf("err = %v, want ErrEmbeddingUnavailable", err)
	}
	if len(posts.posts) != 0 {
		t.Error("post must not be stored when embedding fails")
	}
}

func TestCreatePost_StoresVector(t *testing.T) {
	author := profileWith("user-a", "alice", "", nil)
	posts := newFakePostRepo()
	uc := newFeedForTest(posts, newFakeProfileRepo(author), nil, &fakeEmbedder{vector: []float32{0.1, 0.2}})

	card, err := uc.CreatePost(context.Background(), &CreatePostReq{AuthorID: "user-a", Content: "learning go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, ok := posts.posts[card.ID]
	if !ok {
		t.Fatal("post not stored")
	}
	if !stored.HasContentVector() {
		t.Error("stored post must carry the content vector")
	}
	if card.AuthorUsername != "alice" {
		t.Errorf("AuthorUsername = %q, want alice", card.AuthorUsername)
	}
}
