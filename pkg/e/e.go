package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами
	ErrDimensionMismatch        = fmt.Errorf("vector dimension mismatch")
	ErrVectorDimensionCorrupted = fmt.Errorf("stored vector dimension does not match configured dimension")
	ErrEmptyVector              = fmt.Errorf("vector embedding is empty")
	ErrEmbeddingUnavailable     = fmt.Errorf("embedding provider unavailable")

	// Ошибки доменной валидации
	ErrInvalidCoordinates = fmt.Errorf("latitude must be in [-90,90], longitude in [-180,180]")
	ErrGoalVectorMissing  = fmt.Errorf("goal is not synced yet")
	ErrSelfFeedback       = fmt.Errorf("cannot give impact to yourself")
	ErrSelfConnection     = fmt.Errorf("cannot connect with yourself")
	ErrAlreadyConnected   = fmt.Errorf("connection already exists")
	ErrFeedbackRequired   = fmt.Errorf("feedback text is required")
	ErrContentRequired    = fmt.Errorf("post content is required")
	ErrGoalRequired       = fmt.Errorf("goal text is required")
	ErrInvalidSimilarity  = fmt.Errorf("min_similarity must be a percentage in [0,100]")
	ErrInvalidPagination  = fmt.Errorf("limit and offset must be non-negative")

	// 404 Not Found
	ErrProfileNotFound = fmt.Errorf("profile not found")
	ErrPostNotFound    = fmt.Errorf("post not found")

	// Ошибки HTTP-слоя
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrMissingIdentity     = fmt.Errorf("missing X-User-ID header")
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
