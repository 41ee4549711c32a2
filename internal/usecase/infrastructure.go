package usecase

import "context"

// EmbeddingInfra — провайдер эмбеддингов. Вызов потенциально медленный и
// сетевой; дедлайн и ретраи — ответственность реализации. Ошибка провайдера
// всегда всплывает наружу: безопасного вектора по умолчанию не существует.
type EmbeddingInfra interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// FeedbackClassifier решает, конструктивен ли фидбек.
// Реализация никогда не возвращает ошибку: сбой транспорта или парсинга
// деградирует в (false, причина сбоя).
type FeedbackClassifier interface {
	Classify(ctx context.Context, feedback string) (constructive bool, reason string)
}

// SpatialIndex — пространственная индексация с фиксированным разрешением.
type SpatialIndex interface {
	ToCell(latitude, longitude float64) (string, error)
	Ring(cell string, k int) ([]string, error)
	GridDistance(a, b string) (int, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
