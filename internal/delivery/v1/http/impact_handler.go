package http

import (
	"net/http"

	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/logger"
)

type ImpactHandler struct {
	impactUsecase usecase.ImpactUC
	logger        logger.Logger
}

func NewImpactHandler(impactUsecase usecase.ImpactUC, logger logger.Logger) *ImpactHandler {
	return &ImpactHandler{impactUsecase: impactUsecase, logger: logger}
}

// giveImpact
//
//	@Summary		Фидбек с начислением импакта
//	@Description	Очки начисляются только за конструктивный фидбек
//	@Tags			impact
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"ID отправителя"
//	@Param			body		body		GiveImpactRequest	true	"Получатель и текст фидбека"
//	@Success		201			{object}	GiveImpactResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/impact [post]
func (h *ImpactHandler) giveImpact(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req GiveImpactRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.impactUsecase.GiveImpact(r.Context(), usecase.NewGiveImpactReq(userID, req.ToUserID, req.PostID, req.Feedback))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewGiveImpactResponse(res))
}
