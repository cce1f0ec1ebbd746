package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskarena/backend/pkg/httpcontext"
	leaderboardUC "github.com/taskarena/backend/usecase/leaderboard"
)

type LeaderboardHandler struct {
	baseHandler
	uc *leaderboardUC.UseCase
}

func NewLeaderboardHandler(uc *leaderboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Ranked board for the requester and their friends
// @Tags leaderboard
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.Build(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
