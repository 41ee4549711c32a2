package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/logger"
)

type FeedHandler struct {
	feedUsecase usecase.FeedUC
	logger      logger.Logger
}

func NewFeedHandler(feedUsecase usecase.FeedUC, logger logger.Logger) *FeedHandler {
	return &FeedHandler{feedUsecase: feedUsecase, logger: logger}
}

// rankedFeed
//
//	@Summary		Персональная лента
//	@Description	Посты, ранжированные по близости к цели и популярности
//	@Tags			feed
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			limit		query		int		false	"Размер страницы"
//	@Param			offset		query		int		false	"Смещение"
//	@Success		200			{object}	FeedResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/feed [get]
func (h *FeedHandler) rankedFeed(w http.ResponseWriter, r *http.Request) {
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

	offset, err := parseIntQuery(r, "offset", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.feedUsecase.RankFeed(r.Context(), usecase.NewFeedReq(userID, limit, offset))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewFeedResponse(res))
}

// recentFeed
//
//	@Summary		Хронологическая лента
//	@Description	Последние посты без ранжирования
//	@Tags			feed
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			limit		query		int		false	"Размер страницы"
//	@Param			offset		query		int		false	"Смещение"
//	@Success		200			{object}	FeedResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/feed/recent [get]
func (h *FeedHandler) recentFeed(w http.ResponseWriter, r *http.Request) {
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

	offset, err := parseIntQuery(r, "offset", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	cards, err := h.feedUsecase.RecentFeed(r.Context(), usecase.NewFeedReq(userID, limit, offset))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	posts := make([]PostResponse, 0, len(cards))
	for _, card := range cards {
		posts = append(posts, NewPostResponse(card))
	}

	WriteSuccess(w, http.StatusOK, FeedResponse{Posts: posts, TotalCount: len(posts), CuratedBy: "recency"})
}

// createPost
//
//	@Summary		Публикация поста
//	@Description	Пост сразу векторизуется для ранжирования в лентах
//	@Tags			feed
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"ID автора"
//	@Param			body		body		CreatePostRequest	true	"Содержимое поста"
//	@Success		201			{object}	PostResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/posts [post]
func (h *FeedHandler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req CreatePostRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	card, err := h.feedUsecase.CreatePost(r.Context(), &usecase.CreatePostReq{AuthorID: userID, Content: req.Content})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewPostResponse(*card))
}

// getPost
//
//	@Summary		Пост по ID
//	@Tags			feed
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			post_id		path		string	true	"ID поста"
//	@Success		200			{object}	PostResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/posts/{post_id} [get]
func (h *FeedHandler) getPost(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromCtx(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	card, err := h.feedUsecase.GetPost(r.Context(), chi.URLParam(r, "post_id"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewPostResponse(*card))
}
