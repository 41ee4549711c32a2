package domain

// Match — вычисляемое значение в рамках одного запроса, никогда не
// персистится. SimilarityPct ∈ [0,100], GridDistance ≥ 0.
type Match struct {
	Profile       *Profile
	SimilarityPct float64
	GridDistance  int
	IsNeighbor    bool // расстояние ≤ 1 ячейки
}

func NewMatch(profile *Profile, similarityPct float64, gridDistance int) *Match {
	return &Match{
		Profile:       profile,
		SimilarityPct: similarityPct,
		GridDistance:  gridDistance,
		IsNeighbor:    gridDistance <= 1,
	}
}

// ScoredPost — пост с итоговым баллом ранжирования ленты.
// Итог = 0.8 * simPct/100 + 0.2 * min(impact/10, 1).
type ScoredPost struct {
	Post          *Post
	AuthorName    string
	SimilarityPct float64
	FinalScore    float64
}
