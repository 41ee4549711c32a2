package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/synapse-net/go-backend/internal/metrics"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/logger"
)

type MatchingHandler struct {
	matchingUsecase usecase.MatchingUC
	logger          logger.Logger
}

func NewMatchingHandler(matchingUsecase usecase.MatchingUC, logger logger.Logger) *MatchingHandler {
	return &MatchingHandler{matchingUsecase: matchingUsecase, logger: logger}
}

// findMatches
//
//	@Summary		Гибридный матчинг
//	@Description	Кандидаты из соседних ячеек, отсортированные по похожести целей
//	@Tags			matching
//	@Produce		json
//	@Param			X-User-ID		header		string	true	"ID вызывающего"
//	@Param			rings			query		int		false	"Радиус поиска в кольцах ячеек"
//	@Param			min_similarity	query		number	false	"Порог похожести в процентах"
//	@Param			limit			query		int		false	"Максимум кандидатов"
//	@Success		200				{object}	MatchesResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/matches [get]
func (h *MatchingHandler) findMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	rings, err := parseIntQuery(r, "rings", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit, err := parseIntQuery(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	minSimilarity, err := parseMinSimilarity(r.URL.Query().Get("min_similarity"))
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.MatchRequestsTotal.WithLabelValues("proximity").Inc()

	res, err := h.matchingUsecase.FindMatches(r.Context(), usecase.NewFindMatchesReq(userID, rings, minSimilarity, limit))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	metrics.MatchCandidatesReturned.WithLabelValues("proximity").Observe(float64(res.TotalCount))
	WriteSuccess(w, http.StatusOK, NewMatchesResponse(res))
}

// findSemanticMatches
//
//	@Summary		Глобальный семантический матчинг
//	@Description	Ближайшие goal-векторы по всей сети без географического фильтра
//	@Tags			matching
//	@Produce		json
//	@Param			X-User-ID		header		string	true	"ID вызывающего"
//	@Param			limit			query		int		false	"Максимум кандидатов"
//	@Param			min_similarity	query		number	false	"Порог похожести в процентах"
//	@Success		200				{object}	SemanticMatchesResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/matches/semantic [get]
func (h *MatchingHandler) findSemanticMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	limit, err := parseIntQuery(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	minSimilarity, err := parseMinSimilarity(r.URL.Query().Get("min_similarity"))
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.MatchRequestsTotal.WithLabelValues("semantic").Inc()

	matches, err := h.matchingUsecase.FindSemanticMatches(r.Context(), usecase.NewSemanticMatchesReq(userID, limit, minSimilarity))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	metrics.MatchCandidatesReturned.WithLabelValues("semantic").Observe(float64(len(matches)))
	WriteSuccess(w, http.StatusOK, NewSemanticMatchesResponse(matches))
}

// nearbyProfiles
//
//	@Summary		Соседи по ячейкам
//	@Description	Профили из соседних ячеек без порога похожести
//	@Tags			matching
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			rings		query		int		false	"Радиус поиска в кольцах ячеек"
//	@Param			limit		query		int		false	"Максимум профилей"
//	@Success		200			{object}	NearbyResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/matches/nearby [get]
func (h *MatchingHandler) nearbyProfiles(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	rings, err := parseIntQuery(r, "rings", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit, err := parseIntQuery(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.MatchRequestsTotal.WithLabelValues("nearby").Inc()

	cards, err := h.matchingUsecase.NearbyProfiles(r.Context(), &usecase.NearbyReq{UserID: userID, Rings: rings, Limit: limit})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	metrics.MatchCandidatesReturned.WithLabelValues("nearby").Observe(float64(len(cards)))
	WriteSuccess(w, http.StatusOK, NewNearbyResponse(cards))
}

// connect
//
//	@Summary		Создание связи
//	@Description	Ненаправленная связь между двумя профилями
//	@Tags			matching
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			user_id		path		string	true	"ID второго профиля"
//	@Success		201			{object}	ConnectResponse
//	@Failure		409			{object}	ErrorResponse
//	@Router			/connections/{user_id} [post]
func (h *MatchingHandler) connect(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	targetID := chi.URLParam(r, "user_id")

	res, err := h.matchingUsecase.Connect(r.Context(), &usecase.ConnectReq{FromUserID: userID, ToUserID: targetID})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, ConnectResponse{ConnectionID: res.ConnectionID})
}

// connectionStatus
//
//	@Summary		Статус связи
//	@Tags			matching
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			user_id		path		string	true	"ID второго профиля"
//	@Success		200			{object}	ConnectionStatusResponse
//	@Router			/connections/{user_id} [get]
func (h *MatchingHandler) connectionStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	targetID := chi.URLParam(r, "user_id")

	exists, err := h.matchingUsecase.ConnectionStatus(r.Context(), userID, targetID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ConnectionStatusResponse{Connected: exists})
}
