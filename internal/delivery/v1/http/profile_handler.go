package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/logger"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUC
	logger         logger.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUC, logger logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase, logger: logger}
}

// getProfile
//
//	@Summary		Публичная карточка профиля
//	@Tags			profile
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Param			user_id		path		string	true	"ID профиля"
//	@Success		200			{object}	ProfileResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/profiles/{user_id} [get]
func (h *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromCtx(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	card, err := h.profileUsecase.GetProfile(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProfileResponse(*card))
}

// myProfile
//
//	@Summary		Карточка текущего пользователя
//	@Tags			profile
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Success		200			{object}	ProfileResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/profiles/me [get]
func (h *ProfileHandler) myProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	card, err := h.profileUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProfileResponse(*card))
}

// syncGoal
//
//	@Summary		Обновление цели
//	@Description	Цель векторизуется и переиндексируется для матчинга
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string			true	"ID вызывающего"
//	@Param			body		body		SyncGoalRequest	true	"Текст цели"
//	@Success		200			{object}	SyncGoalResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/profiles/me/goal [put]
func (h *ProfileHandler) syncGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req SyncGoalRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.profileUsecase.SyncGoal(r.Context(), &usecase.SyncGoalReq{UserID: userID, Goal: req.Goal})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SyncGoalResponse{Goal: res.Goal, VectorUpdated: res.VectorUpdated})
}

// updateLocation
//
//	@Summary		Обновление геопозиции
//	@Description	Координаты сводятся к ячейке сетки, наружу отдаётся только ячейка
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string					true	"ID вызывающего"
//	@Param			body		body		UpdateLocationRequest	true	"Координаты"
//	@Success		200			{object}	UpdateLocationResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/profiles/me/location [put]
func (h *ProfileHandler) updateLocation(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateLocationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.profileUsecase.UpdateLocation(r.Context(), &usecase.UpdateLocationReq{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, UpdateLocationResponse{Cell: res.Cell})
}

// stats
//
//	@Summary		Статистика профиля
//	@Tags			profile
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID вызывающего"
//	@Success		200			{object}	StatsResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/profiles/me/stats [get]
func (h *ProfileHandler) stats(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	stats, err := h.profileUsecase.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, StatsResponse{
		ImpactScore:      stats.ImpactScore,
		ConnectionsCount: stats.ConnectionsCount,
		PostsCount:       stats.PostsCount,
	})
}
