package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/synapse-net/go-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrMissingIdentity):
		return http.StatusUnauthorized, e.ErrMissingIdentity.Error()
	case errors.Is(err, e.ErrProfileNotFound):
		return http.StatusNotFound, e.ErrProfileNotFound.Error()
	case errors.Is(err, e.ErrPostNotFound):
		return http.StatusNotFound, e.ErrPostNotFound.Error()
	case errors.Is(err, e.ErrAlreadyConnected):
		return http.StatusConflict, e.ErrAlreadyConnected.Error()
	case errors.Is(err, e.ErrEmbeddingUnavailable):
		return http.StatusServiceUnavailable, e.ErrEmbeddingUnavailable.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrInvalidCoordinates):
		return http.StatusBadRequest, e.ErrInvalidCoordinates.Error()
	case errors.Is(err, e.ErrGoalVectorMissing):
		return http.StatusBadRequest, e.ErrGoalVectorMissing.Error()
	case errors.Is(err, e.ErrSelfFeedback):
		return http.StatusBadRequest, e.ErrSelfFeedback.Error()
	case errors.Is(err, e.ErrSelfConnection):
		return http.StatusBadRequest, e.ErrSelfConnection.Error()
	case errors.Is(err, e.ErrFeedbackRequired):
		return http.StatusBadRequest, e.ErrFeedbackRequired.Error()
	case errors.Is(err, e.ErrContentRequired):
		return http.StatusBadRequest, e.ErrContentRequired.Error()
	case errors.Is(err, e.ErrGoalRequired):
		return http.StatusBadRequest, e.ErrGoalRequired.Error()
	case errors.Is(err, e.ErrInvalidSimilarity):
		return http.StatusBadRequest, e.ErrInvalidSimilarity.Error()
	case errors.Is(err, e.ErrInvalidPagination):
		return http.StatusBadRequest, e.ErrInvalidPagination.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseMinSimilarity разбирает порог похожести из query-строки.
// Принимает процент вида "65" или "65.5"; пустое значение даёт 0.
func parseMinSimilarity(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidSimilarity
	}

	if d.LessThan(decimal.Zero) || d.GreaterThan(decimal.NewFromInt(100)) {
		return 0, e.ErrInvalidSimilarity
	}

	// Больше двух знаков после запятой порог не различает.
	if d.Exponent() < -2 {
		return 0, e.ErrInvalidSimilarity
	}

	value, _ := d.Float64()

	return value, nil
}

// parseIntQuery разбирает целочисленный query-параметр с дефолтом.
func parseIntQuery(r *http.Request, key string, defaultValue int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, e.ErrStatusBadRequest
	}

	return value, nil
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return e.ErrStatusBadRequest
	}

	return nil
}
