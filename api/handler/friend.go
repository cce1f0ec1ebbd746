package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskarena/backend/api/transport"
	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/pkg/httpcontext"
	friendUC "github.com/taskarena/backend/usecase/friend"
)

type FriendHandler struct {
	baseHandler
	uc *friendUC.UseCase
}

func NewFriendHandler(uc *friendUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FriendHandler {
	return &FriendHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List friends
// @Tags friends
// @Router /api/v1/friends [get]
func (h *FriendHandler) GetFriends(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	friends, err := h.uc.ListFriends(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, friends)
}

// @Summary Add a friend by email
// @Tags friends
// @Router /api/v1/friends [post]
func (h *FriendHandler) AddFriend(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.FriendAddRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	friend, err := h.uc.AddFriend(stdCtx, userID, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, friend)
}
