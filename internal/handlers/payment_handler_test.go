package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) SubmitBySlug(ctx context.Context, slug string, p model.PaymentRequest) (*model.Transaction, error) {
	args := m.Called(ctx, slug, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockPaymentService) SubmitByID(ctx context.Context, formID int64, p model.PaymentRequest) (*model.Transaction, error) {
	args := m.Called(ctx, formID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockPaymentService) ListTransactions(ctx context.Context, formID, requesterID int64) ([]*model.Transaction, error) {
	args := m.Called(ctx, formID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func TestPaymentHandler_SubmitBySlug(t *testing.T) {
	t.Run("successful submission", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		bodyBytes, _ := json.Marshal(paymentRequest{
			PayerEmail: "payer@example.com", AmountPaid: 25.5, Currency: "EUR",
		})

		svc.On("SubmitBySlug", mock.Anything, "abc-123", mock.MatchedBy(func(p model.PaymentRequest) bool {
			return p.PayerEmail == "payer@example.com" && p.AmountPaid == 25.5
		})).Return(&model.Transaction{ID: 1, FormID: 42, AmountPaid: 25.5, Currency: "EUR"}, nil)

		ctx := setupTestContext("POST", "/forms/payment/abc-123", bodyBytes)
		ctx.SetUserValue("slug", "abc-123")
		handler.SubmitBySlug(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response model.Transaction
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, int64(1), response.ID)

		svc.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		bodyBytes, _ := json.Marshal(paymentRequest{
			PayerEmail: "payer@example.com", AmountPaid: 1, Currency: "USD",
		})
		svc.On("SubmitBySlug", mock.Anything, "nope", mock.Anything).Return(nil, services.ErrFormNotFound)

		ctx := setupTestContext("POST", "/forms/payment/nope", bodyBytes)
		ctx.SetUserValue("slug", "nope")
		handler.SubmitBySlug(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		ctx := setupTestContext("POST", "/forms/payment/abc-123", []byte("invalid"))
		ctx.SetUserValue("slug", "abc-123")
		handler.SubmitBySlug(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestPaymentHandler_SubmitByID(t *testing.T) {
	t.Run("successful submission", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		bodyBytes, _ := json.Marshal(paymentRequest{
			PayerEmail: "payer@example.com", AmountPaid: 10, Currency: "USD",
		})
		svc.On("SubmitByID", mock.Anything, int64(42), mock.Anything).
			Return(&model.Transaction{ID: 2, FormID: 42}, nil)

		ctx := setupTestContext("POST", "/forms/42/payment", bodyBytes)
		ctx.SetUserValue("form_id", "42")
		handler.SubmitByID(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
	})

	t.Run("non-numeric form id", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		ctx := setupTestContext("POST", "/forms/abc/payment", nil)
		ctx.SetUserValue("form_id", "abc")
		handler.SubmitByID(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "SubmitByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler_ListTransactions(t *testing.T) {
	t.Run("owner lists transactions", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		svc.On("ListTransactions", mock.Anything, int64(42), int64(7)).Return([]*model.Transaction{
			{ID: 1, FormID: 42}, {ID: 2, FormID: 42},
		}, nil)

		ctx := authedContext("GET", "/forms/42/transactions", nil, &model.User{ID: 7})
		ctx.SetUserValue("form_id", "42")
		handler.ListTransactions(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response listTransactionsResponse
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Len(t, response.Items, 2)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		svc.On("ListTransactions", mock.Anything, int64(42), int64(8)).Return(nil, services.ErrForbidden)

		ctx := authedContext("GET", "/forms/42/transactions", nil, &model.User{ID: 8})
		ctx.SetUserValue("form_id", "42")
		handler.ListTransactions(ctx)

		assert.Equal(t, 403, ctx.Response.StatusCode())
	})

	t.Run("unknown form", func(t *testing.T) {
		svc := new(MockPaymentService)
		handler := NewPaymentHandler(svc)

		svc.On("ListTransactions", mock.Anything, int64(404), int64(7)).Return(nil, services.ErrFormNotFound)

		ctx := authedContext("GET", "/forms/404/transactions", nil, &model.User{ID: 7})
		ctx.SetUserValue("form_id", "404")
		handler.ListTransactions(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}
