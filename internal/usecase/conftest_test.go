package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/synapse-net/go-backend/internal/domain"
	"github.com/synapse-net/go-backend/pkg/e"
)

// Фейки репозиториев и инфраструктуры для unit-тестов usecase-слоя.

type fakeProfileRepo struct {
	profiles    map[string]*domain.Profile
	impactAdded map[string]int64
	updatedGoal map[string]string
	listErr     error
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	m := make(map[string]*domain.Profile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfileRepo{
		profiles:    m,
		impactAdded: map[string]int64{},
		updatedGoal: map[string]string{},
	}
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, e.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Profile, error) {
	var res []*domain.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f *fakeProfileRepo) ListByCells(_ context.Context, cells []string, excludeID string, limit int) ([]*domain.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	cellSet := make(map[string]bool, len(cells))
	for _, c := range cells {
		cellSet[c] = true
	}
	var res []*domain.Profile
	for _, p := range f.profiles {
		if p.ID == excludeID || !p.HasLocation() || !p.HasGoalVector() {
			continue
		}
		if cellSet[*p.Cell] {
			res = append(res, p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakeProfileRepo) UpdateGoal(_ context.Context, id string, goal string, vector []float32) error {
	p, ok := f.profiles[id]
	if !ok {
		return e.ErrProfileNotFound
	}
	p.CurrentGoal = &goal
	p.GoalVector = vector
	f.updatedGoal[id] = goal
	return nil
}

func (f *fakeProfileRepo) UpdateLocation(_ context.Context, id string, latitude, longitude float64, cell string) error {
	p, ok := f.profiles[id]
	if !ok {
		return e.ErrProfileNotFound
	}
	p.Latitude = &latitude
	p.Longitude = &longitude
	p.Cell = &cell
	return nil
}

func (f *fakeProfileRepo) AddImpactScore(_ context.Context, id string, points int64) error {
	f.impactAdded[id] += points
	return nil
}

func (f *fakeProfileRepo) Stats(_ context.Context, id string) (*ProfileStats, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, e.ErrProfileNotFound
	}
	return &ProfileStats{ImpactScore: p.ImpactScore}, nil
}

type fakePostRepo struct {
	posts    map[string]*domain.Post
	vectored []FeedCandidate
	recent   []FeedCandidate
	incCount map[string]int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:    map[string]*domain.Post{},
		incCount: map[string]int{},
	}
}

func (f *fakePostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, e.ErrPostNotFound
	}
	return p, nil
}

func (f *fakePostRepo) ListVectored(_ context.Context) ([]FeedCandidate, error) {
	return f.vectored, nil
}

func (f *fakePostRepo) ListRecent(_ context.Context, limit, offset int) ([]FeedCandidate, error) {
	if offset >= len(f.recent) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.recent) {
		end = len(f.recent)
	}
	return f.recent[offset:end], nil
}

func (f *fakePostRepo) IncImpactCount(_ context.Context, id string) error {
	f.incCount[id]++
	return nil
}

type fakeInteractionRepo struct {
	created     []*domain.Interaction
	connections map[string]bool
	impacted    map[string]bool
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{
		connections: map[string]bool{},
		impacted:    map[string]bool{},
	}
}

func connKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func (f *fakeInteractionRepo) Create(_ context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	f.created = append(f.created, interaction)
	if interaction.Type == domain.InteractionConnect {
		f.connections[connKey(interaction.FromUserID, interaction.ToUserID)] = true
	}
	return interaction, nil
}

func (f *fakeInteractionRepo) ConnectionExists(_ context.Context, a, b string) (bool, error) {
	return f.connections[connKey(a, b)], nil
}

func (f *fakeInteractionRepo) ImpactedAuthors(_ context.Context, _ string, authorIDs []string) (map[string]bool, error) {
	res := map[string]bool{}
	for _, id := range authorIDs {
		if f.impacted[id] {
			res[id] = true
		}
	}
	return res, nil
}

type fakeGoalVectorRepo struct {
	hits      []VectorHit
	upserts   []*domain.GoalPoint
	upsertErr error
}

func (f *fakeGoalVectorRepo) Upsert(_ context.Context, point *domain.GoalPoint) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, point)
	return nil
}

func (f *fakeGoalVectorRepo) SearchNearest(_ context.Context, _ []float32, excludeID string, limit int) ([]VectorHit, error) {
	var res []VectorHit
	for _, h := range f.hits {
		if h.ProfileID == excludeID {
			continue
		}
		res = append(res, h)
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

type fakeCacheRepo struct {
	cards   map[string]ProfileCard
	deleted []string
	getErr  error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{cards: map[string]ProfileCard{}}
}

func (f *fakeCacheRepo) GetProfiles(_ context.Context, ids []string) (map[string]ProfileCard, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	res := map[string]ProfileCard{}
	for _, id := range ids {
		if c, ok := f.cards[id]; ok {
			res[id] = c
		}
	}
	return res, nil
}

func (f *fakeCacheRepo) SetProfiles(_ context.Context, cards []ProfileCard) error {
	for _, c := range cards {
		f.cards[c.ID] = c
	}
	return nil
}

func (f *fakeCacheRepo) DeleteProfiles(_ context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

// fakeSpatial раздаёт кольца и расстояния по таблицам, без настоящего H3.
type fakeSpatial struct {
	rings     map[string][]string
	distances map[string]int
}

func (f *fakeSpatial) ToCell(latitude, longitude float64) (string, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return "", e.ErrInvalidCoordinates
	}
	return fmt.Sprintf("cell-%.0f-%.0f", latitude, longitude), nil
}

func (f *fakeSpatial) Ring(cell string, _ int) ([]string, error) {
	if ring, ok := f.rings[cell]; ok {
		return ring, nil
	}
	return []string{cell}, nil
}

func (f *fakeSpatial) GridDistance(a, b string) (int, error) {
	if a == b {
		return 0, nil
	}
	if d, ok := f.distances[connKey(a, b)]; ok {
		return d, nil
	}
	return 1, nil
}

// fakeTx фиксирует исход транзакции; SQL-методы не используются,
// фейки репозиториев пишут в свои структуры напрямую.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Begin(context.Context) (pgx.Tx, error) { return f, nil }

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

func (f *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (f *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (f *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (f *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (f *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func (f *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (f *fakeTx) Conn() *pgx.Conn { return nil }

// fakeDBPool реализует transaction.Transactional поверх fakeTx.
type fakeDBPool struct {
	tx       *fakeTx
	beginErr error
}

func newFakeDBPool() *fakeDBPool { return &fakeDBPool{tx: &fakeTx{}} }

func (f *fakeDBPool) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeClassifier struct {
	constructive bool
	reason       string
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (bool, string) {
	return f.constructive, f.reason
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func postForTest(id, authorID string) *domain.Post {
	return domain.NewPost(id, authorID, "post "+id, []float32{1, 0})
}

func profileWith(id, username, cell string, vector []float32) *domain.Profile {
	p := domain.NewProfile(id, username)
	if cell != "" {
		p.Cell = strPtr(cell)
		p.Latitude = f64Ptr(55.75)
		p.Longitude = f64Ptr(37.61)
	}
	p.GoalVector = vector
	return p
}
