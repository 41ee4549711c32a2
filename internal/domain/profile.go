package domain

import "time"

// Profile описывает профиль участника сети.
// GoalVector — эмбеддинг текущей цели; nil означает, что цель ещё не
// синхронизирована (семантический матчинг для профиля отключён).
type Profile struct {
	ID          string // uuid
	Username    string
	Bio         *string
	CurrentGoal *string
	GoalVector  []float32
	Latitude    *float64
	Longitude   *float64
	Cell        *string // H3-индекс, производный от координат
	ImpactScore int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProfile(id string, username string) *Profile {
	return &Profile{
		ID:       id,
		Username: username,
	}
}

// HasGoalVector сообщает, синхронизирован ли goal-вектор.
// Вектор либо отсутствует целиком, либо имеет полную размерность —
// частичных векторов не бывает.
func (p *Profile) HasGoalVector() bool {
	return p.GoalVector != nil
}

// HasLocation сообщает, задана ли локация (и, следовательно, ячейка).
func (p *Profile) HasLocation() bool {
	return p.Cell != nil && *p.Cell != ""
}
