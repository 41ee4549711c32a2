package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/synapse-net/go-backend/pkg/e"
)

// impactEnv собирает usecase вместе с фейками, чтобы тесты могли проверять
// побочные эффекты: счётчики, взаимодействия, outbox и исход транзакции.
type impactEnv struct {
	uc           *ImpactUseCase
	profiles     *fakeProfileRepo
	posts        *fakePostRepo
	interactions *fakeInteractionRepo
	outbox       *fakeOutboxRepo
	cache        *fakeCacheRepo
	pool         *fakeDBPool
}

func newImpactEnv(profiles *fakeProfileRepo, posts *fakePostRepo, classifier *fakeClassifier) *impactEnv {
	if posts == nil {
		posts = newFakePostRepo()
	}
	if classifier == nil {
		classifier = &fakeClassifier{constructive: true, reason: "ok"}
	}
	env := &impactEnv{
		profiles:     profiles,
		posts:        posts,
		interactions: newFakeInteractionRepo(),
		outbox:       &fakeOutboxRepo{},
		cache:        newFakeCacheRepo(),
		pool:         newFakeDBPool(),
	}
	env.uc = NewImpactUC(profiles, posts, env.interactions, env.outbox, env.cache, classifier, env.pool, nopLogger{})
	return env
}

type fakeOutboxRepo struct {
	created   []*OutboxEvent
	createErr error
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, _ int64) error { return nil }

func TestGiveImpact_EmptyFeedbackRejected(t *testing.T) {
	env := newImpactEnv(newFakeProfileRepo(), nil, nil)

	_, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", nil, "  "))
	if !errors.Is(err, e.ErrFeedbackRequired) {
		t.Fatalf("err = %v, want ErrFeedbackRequired", err)
	}
}

func TestGiveImpact_SelfFeedbackNoMutation(t *testing.T) {
	env := newImpactEnv(newFakeProfileRepo(profileWith("user-a", "alice", "", nil)), nil, nil)

	_, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-a", nil, "solid work on the pacing"))
	if !errors.Is(err, e.ErrSelfFeedback) {
		t.Fatalf("err = %v, want ErrSelfFeedback", err)
	}
	if len(env.profiles.impactAdded) != 0 {
		t.Error("self-feedback must not change impact score")
	}
	if len(env.interactions.created) != 0 {
		t.Error("self-feedback must not create an interaction")
	}
}

func TestGiveImpact_SelfFeedbackViaOwnPost(t *testing.T) {
	author := profileWith("user-a", "alice", "", nil)
	profiles := newFakeProfileRepo(author)
	posts := newFakePostRepo()
	post, err := posts.Create(context.Background(), postForTest("post-1", "user-a"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	env := newImpactEnv(profiles, posts, nil)

	// ToUserID подложен чужой, но пост принадлежит отправителю.
	_, err = env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-a", &post.ID, "great breakdown of the approach"))
	if !errors.Is(err, e.ErrSelfFeedback) {
		t.Fatalf("err = %v, want ErrSelfFeedback", err)
	}
}

func TestGiveImpact_PostRecipientMismatch(t *testing.T) {
	recipient := profileWith("user-b", "bob", "", nil)
	author := profileWith("user-c", "carol", "", nil)
	profiles := newFakeProfileRepo(recipient, author)
	posts := newFakePostRepo()
	post, err := posts.Create(context.Background(), postForTest("post-1", "user-c"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	env := newImpactEnv(profiles, posts, nil)

	_, err = env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", &post.ID, "great breakdown of the approach"))
	if !errors.Is(err, e.ErrStatusBadRequest) {
		t.Fatalf("err = %v, want ErrStatusBadRequest", err)
	}
}

func TestGiveImpact_UnknownRecipient(t *testing.T) {
	env := newImpactEnv(newFakeProfileRepo(), nil, nil)

	_, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "ghost", nil, "great breakdown of the approach"))
	if !errors.Is(err, e.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestGiveImpact_ConstructiveAwardsScoreAndCommits(t *testing.T) {
	recipient := profileWith("user-b", "bob", "", nil)
	posts := newFakePostRepo()
	post, err := posts.Create(context.Background(), postForTest("post-1", "user-b"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	env := newImpactEnv(newFakeProfileRepo(recipient), posts, nil)

	res, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", &post.ID, "clear structure and a concrete example"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Points != 1 {
		t.Errorf("Points = %d, want 1", res.Points)
	}
	if env.profiles.impactAdded["user-b"] != 1 {
		t.Errorf("impactAdded = %v, want +1 for user-b", env.profiles.impactAdded)
	}
	if env.posts.incCount[post.ID] != 1 {
		t.Errorf("incCount = %v, want post counter incremented", env.posts.incCount)
	}
	if len(env.interactions.created) != 1 {
		t.Fatalf("interactions = %d, want 1", len(env.interactions.created))
	}
	if len(env.outbox.created) != 1 {
		t.Fatalf("outbox events = %d, want 1", len(env.outbox.created))
	}
	if env.outbox.created[0].EventType != OutboxEventImpactAwarded {
		t.Errorf("EventType = %q, want %q", env.outbox.created[0].EventType, OutboxEventImpactAwarded)
	}
	if !env.pool.tx.committed {
		t.Error("transaction must be committed")
	}
	if res.PostImpactCount == nil || *res.PostImpactCount != 1 {
		t.Errorf("PostImpactCount = %v, want 1", res.PostImpactCount)
	}
	if len(env.cache.deleted) != 1 || env.cache.deleted[0] != "user-b" {
		t.Errorf("cache invalidation = %v, want [user-b]", env.cache.deleted)
	}
}

func TestGiveImpact_NotConstructiveRecordsInteractionOnly(t *testing.T) {
	recipient := profileWith("user-b", "bob", "", nil)
	classifier := &fakeClassifier{constructive: false, reason: "not actionable"}
	env := newImpactEnv(newFakeProfileRepo(recipient), nil, classifier)

	res, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", nil, "meh, did not like it at all"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Points != 0 || res.IsConstructive {
		t.Errorf("res = %+v, want zero points, not constructive", res)
	}
	if len(env.interactions.created) != 1 {
		t.Errorf("interactions = %d, want record kept anyway", len(env.interactions.created))
	}
	if len(env.profiles.impactAdded) != 0 {
		t.Error("score must not change without points")
	}
	if len(env.outbox.created) != 0 {
		t.Error("outbox event must not be enqueued without points")
	}
	if len(env.cache.deleted) != 0 {
		t.Error("cache must not be invalidated without points")
	}
	if !env.pool.tx.committed {
		t.Error("interaction record still needs a committed transaction")
	}
}

func TestGiveImpact_DetailedThresholdCountsRunes(t *testing.T) {
	// 120 кириллических символов занимают 240 байт: байтовый подсчёт
	// ошибочно перевёл бы фидбек в развёрнутый.
	recipient := profileWith("user-b", "bob", "", nil)
	env := newImpactEnv(newFakeProfileRepo(recipient), nil, nil)

	feedback := strings.Repeat("т", 120)
	res, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", nil, feedback))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Points != 1 {
		t.Errorf("Points = %d, want 1 for 120-char feedback", res.Points)
	}

	detailed := strings.Repeat("т", 201)
	res, err = env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", nil, detailed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Points != 2 {
		t.Errorf("Points = %d, want 2 for 201-char feedback", res.Points)
	}
}

func TestGiveImpact_OutboxFailureRollsBack(t *testing.T) {
	recipient := profileWith("user-b", "bob", "", nil)
	env := newImpactEnv(newFakeProfileRepo(recipient), nil, nil)
	env.outbox.createErr = errors.New("outbox insert failed")

	_, err := env.uc.GiveImpact(context.Background(), NewGiveImpactReq("user-a", "user-b", nil, "clear structure and a concrete example"))
	if err == nil {
		t.Fatal("expected error from outbox failure")
	}
	if env.pool.tx.committed {
		t.Error("transaction must not be committed")
	}
	if !env.pool.tx.rolledBack {
		t.Error("transaction must be rolled back")
	}
	if len(env.cache.deleted) != 0 {
		t.Error("cache must not be invalidated on rollback")
	}
}

func TestCalculateImpactPoints(t *testing.T) {
	tests := []struct {
		name         string
		constructive bool
		feedbackLen  int
		want         int
	}{
		{"constructive detailed", true, 250, 2},
		{"constructive short", true, 50, 1},
		{"constructive at boundary", true, 200, 1},
		{"not constructive long", false, 999, 0},
		{"not constructive short", false, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateImpactPoints(tt.constructive, tt.feedbackLen)
			if got != tt.want {
				t.Errorf("calculateImpactPoints(%v, %d) = %d, want %d",
					tt.constructive, tt.feedbackLen, got, tt.want)
			}
		})
	}
}

func TestImpactMessage(t *testing.T) {
	if msg := impactMessage(true, 2); !strings.Contains(msg, "+2") {
		t.Errorf("message %q must mention awarded points", msg)
	}
	if msg := impactMessage(false, 0); strings.Contains(msg, "+") {
		t.Errorf("message %q must not promise points", msg)
	}
}
