package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/payformhq/payform/internal/model"
	xhttp "github.com/payformhq/payform/pkg/http"
)

type PaymentService interface {
	SubmitBySlug(ctx context.Context, slug string, p model.PaymentRequest) (*model.Transaction, error)
	SubmitByID(ctx context.Context, formID int64, p model.PaymentRequest) (*model.Transaction, error)
	ListTransactions(ctx context.Context, formID, requesterID int64) ([]*model.Transaction, error)
}

type PaymentHandler struct {
	svc PaymentService
}

// RegisterPaymentRoutes wires the public submission endpoints and the
// owner-only transaction listing. Submission stays unauthenticated so anyone
// holding a shareable URL can pay.
func RegisterPaymentRoutes(e *router.Group, h *PaymentHandler, auth *AuthMiddleware) {
	e.POST("/forms/payment/{slug}", h.SubmitBySlug)
	e.POST("/forms/{form_id}/payment", h.SubmitByID)
	e.GET("/forms/{form_id}/transactions", auth.Require(h.ListTransactions))
}

func NewPaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: paymentService,
	}
}

type paymentRequest struct {
	PayerEmail string  `json:"payer_email"`
	AmountPaid float64 `json:"amount_paid"`
	Currency   string  `json:"currency"`
}

type listTransactionsResponse struct {
	Items []*model.Transaction `json:"items"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *PaymentHandler) SubmitBySlug(ctx *xhttp.RequestCtx) {
	var req paymentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	tx, err := h.svc.SubmitBySlug(ctx, routeParam(ctx, "slug"), model.PaymentRequest{
		PayerEmail: req.PayerEmail,
		AmountPaid: req.AmountPaid,
		Currency:   req.Currency,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, tx)
}

func (h *PaymentHandler) SubmitByID(ctx *xhttp.RequestCtx) {
	formID, err := routeParamInt64(ctx, "form_id")
	if err != nil {
		writeError(ctx, 400, "invalid form id")
		return
	}
	var req paymentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	tx, err := h.svc.SubmitByID(ctx, formID, model.PaymentRequest{
		PayerEmail: req.PayerEmail,
		AmountPaid: req.AmountPaid,
		Currency:   req.Currency,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, tx)
}

func (h *PaymentHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	formID, err := routeParamInt64(ctx, "form_id")
	if err != nil {
		writeError(ctx, 400, "invalid form id")
		return
	}
	txs, err := h.svc.ListTransactions(ctx, formID, authUser(ctx).ID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listTransactionsResponse{Items: txs})
}
