package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/synapse-net/go-backend/pkg/e"
)

func newProfileForTest(profiles *fakeProfileRepo, cache *fakeCacheRepo, embedder *fakeEmbedder, spatial *fakeSpatial) *ProfileUseCase {
	if cache == nil {
		cache = newFakeCacheRepo()
	}
	if embedder == nil {
		embedder = &fakeEmbedder{vector: []float32{1, 0}}
	}
	if spatial == nil {
		spatial = &fakeSpatial{}
	}
	return NewProfileUC(profiles, &fakeGoalVectorRepo{}, cache, embedder, spatial, newFakeDBPool(), nopLogger{})
}

func TestGetProfile_CacheHitSkipsDB(t *testing.T) {
	cache := newFakeCacheRepo()
	cache.cards["user-a"] = ProfileCard{ID: "user-a", Username: "alice"}
	// Пустой репозиторий: попадание в БД закончилось бы ErrProfileNotFound.
	uc := newProfileForTest(newFakeProfileRepo(), cache, nil, nil)

	card, err := uc.GetProfile(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Username != "alice" {
		t.Errorf("Username = %q, want alice", card.Username)
	}
}

func TestGetProfile_CacheErrorFallsBackToDB(t *testing.T) {
	cache := newFakeCacheRepo()
	cache.getErr = errors.New("redis down")
	profile := profileWith("user-a", "alice", "", nil)
	uc := newProfileForTest(newFakeProfileRepo(profile), cache, nil, nil)

	card, err := uc.GetProfile(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("cache failure must degrade to db read: %v", err)
	}
	if card.ID != "user-a" {
		t.Errorf("ID = %q, want user-a", card.ID)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	uc := newProfileForTest(newFakeProfileRepo(), nil, nil, nil)

	_, err := uc.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, e.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestSyncGoal_EmptyGoalRejected(t *testing.T) {
	uc := newProfileForTest(newFakeProfileRepo(), nil, nil, nil)

	_, err := uc.SyncGoal(context.Background(), &SyncGoalReq{UserID: "user-a", Goal: "   "})
	if !errors.Is(err, e.ErrGoalRequired) {
		t.Fatalf("err = %v, want ErrGoalRequired", err)
	}
}

func TestSyncGoal_EmbeddingFailureKeepsOldGoal(t *testing.T) {
	oldGoal := "learn go"
	profile := profileWith("user-a", "alice", "", []float32{1, 0})
	profile.CurrentGoal = &oldGoal
	profiles := newFakeProfileRepo(profile)
	embedder := &fakeEmbedder{err: e.ErrEmbeddingUnavailable}
	uc := newProfileForTest(profiles, nil, embedder, nil)

	_, err := uc.SyncGoal(context.Background(), &SyncGoalReq{UserID: "user-a", Goal: "learn rust"})
	if !errors.Is(err, e.ErrEmbeddingUnavailable) {
		t.Fatalf("err = %v, want ErrEmbeddingUnavailable", err)
	}
	if *profile.CurrentGoal != oldGoal {
		t.Errorf("goal = %q, want untouched %q", *profile.CurrentGoal, oldGoal)
	}
	if len(profiles.updatedGoal) != 0 {
		t.Error("goal must not be persisted when embedding fails")
	}
}

func TestSyncGoal_CommitsGoalAndVectorTogether(t *testing.T) {
	profile := profileWith("user-a", "alice", "", nil)
	profiles := newFakeProfileRepo(profile)
	vectors := &fakeGoalVectorRepo{}
	cache := newFakeCacheRepo()
	pool := newFakeDBPool()
	uc := NewProfileUC(profiles, vectors, cache, &fakeEmbedder{vector: []float32{1, 0}}, &fakeSpatial{}, pool, nopLogger{})

	res, err := uc.SyncGoal(context.Background(), &SyncGoalReq{UserID: "user-a", Goal: "learn rust"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.VectorUpdated || res.Goal != "learn rust" {
		t.Errorf("res = %+v, want updated goal", res)
	}
	if profiles.updatedGoal["user-a"] != "learn rust" {
		t.Errorf("updatedGoal = %v, want persisted goal", profiles.updatedGoal)
	}
	if len(vectors.upserts) != 1 || vectors.upserts[0].ProfileID != "user-a" {
		t.Fatalf("upserts = %+v, want one point for user-a", vectors.upserts)
	}
	if !pool.tx.committed {
		t.Error("transaction must be committed")
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "user-a" {
		t.Errorf("cache invalidation = %v, want [user-a]", cache.deleted)
	}
}

func TestSyncGoal_VectorStoreFailureRollsBack(t *testing.T) {
	profile := profileWith("user-a", "alice", "", nil)
	profiles := newFakeProfileRepo(profile)
	vectors := &fakeGoalVectorRepo{upsertErr: errors.New("qdrant down")}
	cache := newFakeCacheRepo()
	pool := newFakeDBPool()
	uc := NewProfileUC(profiles, vectors, cache, &fakeEmbedder{vector: []float32{1, 0}}, &fakeSpatial{}, pool, nopLogger{})

	_, err := uc.SyncGoal(context.Background(), &SyncGoalReq{UserID: "user-a", Goal: "learn rust"})
	if err == nil {
		t.Fatal("expected error from vector store failure")
	}
	if pool.tx.committed {
		t.Error("transaction must not be committed")
	}
	if !pool.tx.rolledBack {
		t.Error("transaction must be rolled back")
	}
	if len(cache.deleted) != 0 {
		t.Error("cache must not be invalidated on rollback")
	}
}

func TestUpdateLocation_InvalidCoordinates(t *testing.T) {
	profile := profileWith("user-a", "alice", "", nil)
	uc := newProfileForTest(newFakeProfileRepo(profile), nil, nil, nil)

	_, err := uc.UpdateLocation(context.Background(), &UpdateLocationReq{UserID: "user-a", Latitude: 146, Longitude: 0})
	if !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("err = %v, want ErrInvalidCoordinates", err)
	}
	if profile.HasLocation() {
		t.Error("invalid coordinates must not be persisted")
	}
}

func TestUpdateLocation_PersistsCellWithCoordinates(t *testing.T) {
	profile := profileWith("user-a", "alice", "", nil)
	uc := newProfileForTest(newFakeProfileRepo(profile), nil, nil, nil)

	res, err := uc.UpdateLocation(context.Background(), &UpdateLocationReq{UserID: "user-a", Latitude: 55, Longitude: 37})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cell == "" {
		t.Fatal("cell must be derived from coordinates")
	}
	if !profile.HasLocation() || *profile.Cell != res.Cell {
		t.Errorf("stored cell = %v, want %q", profile.Cell, res.Cell)
	}
}

func TestStats(t *testing.T) {
	profile := profileWith("user-a", "alice", "", nil)
	profile.ImpactScore = 42
	uc := newProfileForTest(newFakeProfileRepo(profile), nil, nil, nil)

	stats, err := uc.Stats(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.ImpactScore != 42 {
		t.Errorf("ImpactScore = %d, want 42", stats.ImpactScore)
	}
}
