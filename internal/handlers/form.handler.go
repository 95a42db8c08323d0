package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/services"
	xhttp "github.com/payformhq/payform/pkg/http"
)

type FormService interface {
	Create(ctx context.Context, p model.FormCreateRequest) (*services.CreatedForm, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.PaymentForm, error)
}

type FormHandler struct {
	svc FormService
}

func RegisterFormRoutes(e *router.Group, h *FormHandler, auth *AuthMiddleware) {
	e.POST("/forms", auth.Require(h.CreateForm))
	e.GET("/forms", auth.Require(h.ListForms))
}

func NewFormHandler(formService FormService) *FormHandler {
	return &FormHandler{
		svc: formService,
	}
}

type createFormRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type listFormsResponse struct {
	Items []*model.PaymentForm `json:"items"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *FormHandler) CreateForm(ctx *xhttp.RequestCtx) {
	var req createFormRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	p := model.FormCreateRequest{
		OwnerID:     authUser(ctx).ID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}
	created, err := h.svc.Create(ctx, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, created)
}

func (h *FormHandler) ListForms(ctx *xhttp.RequestCtx) {
	forms, err := h.svc.ListByOwner(ctx, authUser(ctx).ID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listFormsResponse{Items: forms})
}
