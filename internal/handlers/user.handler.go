package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/services"
	xhttp "github.com/payformhq/payform/pkg/http"
)

type UserService interface {
	Register(ctx context.Context, p model.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*services.AccessToken, error)
}

type UserHandler struct {
	svc UserService
}

func RegisterUserRoutes(e *router.Group, h *UserHandler) {
	e.POST("/register", h.Register)
	e.POST("/token", h.Token)
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		svc: userService,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *UserHandler) Register(ctx *xhttp.RequestCtx) {
	var req registerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	user, err := h.svc.Register(ctx, model.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, user)
}

func (h *UserHandler) Token(ctx *xhttp.RequestCtx) {
	var req tokenRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	token, err := h.svc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, token)
}
