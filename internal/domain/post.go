package domain

import "time"

// Post описывает публикацию с семантическим вектором содержимого.
// ImpactCount — счётчик полученного конструктивного фидбека, только растёт.
type Post struct {
	ID            string // uuid
	AuthorID      string
	Content       string
	ContentVector []float32
	ImpactCount   int64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewPost(id string, authorID string, content string, vector []float32) *Post {
	return &Post{
		ID:            id,
		AuthorID:      authorID,
		Content:       content,
		ContentVector: vector,
	}
}

// HasContentVector сообщает, есть ли у поста вектор содержимого.
// Посты без вектора не участвуют в ранжированной ленте.
func (p *Post) HasContentVector() bool {
	return p.ContentVector != nil
}
