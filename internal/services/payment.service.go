package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/repository"
	"github.com/payformhq/payform/pkg/logger"
	"github.com/payformhq/payform/pkg/prom"
)

var (
	ErrForbidden = errors.New("not the owner of this payment form")
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	ListByForm(ctx context.Context, formID int64) ([]*model.Transaction, error)
}

// NotificationPublisher enqueues owner notifications for async delivery.
type NotificationPublisher interface {
	PublishJSON(ctx context.Context, v interface{}, metadata map[string]string) (string, error)
}

type PaymentService struct {
	formRepo  PaymentFormRepository
	txRepo    TransactionRepository
	userRepo  UserRepository
	publisher NotificationPublisher
}

func NewPaymentService(
	formRepo PaymentFormRepository,
	txRepo TransactionRepository,
	userRepo UserRepository,
	publisher NotificationPublisher,
) *PaymentService {
	return &PaymentService{
		formRepo:  formRepo,
		txRepo:    txRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// SubmitBySlug records a payment against the form addressed by its public
// slug. The amount and currency are recorded exactly as submitted.
func (s *PaymentService) SubmitBySlug(ctx context.Context, slug string, p model.PaymentRequest) (*model.Transaction, error) {
	form, err := s.formRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return s.submit(ctx, form, p)
}

// SubmitByID records a payment against a form addressed by numeric id. Kept
// alongside the slug path for callers that predate shareable URLs.
func (s *PaymentService) SubmitByID(ctx context.Context, formID int64, p model.PaymentRequest) (*model.Transaction, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return s.submit(ctx, form, p)
}

// submit is the common recording path. Once the transaction row is written the
// payment has succeeded: everything after that point is best effort and must
// never surface an error to the payer.
func (s *PaymentService) submit(ctx context.Context, form *model.PaymentForm, p model.PaymentRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		FormID:     form.ID,
		PayerEmail: p.PayerEmail,
		AmountPaid: p.AmountPaid,
		Currency:   p.Currency,
	}

	created, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}
	prom.IncCounter(prom.SystemPayments, prom.MetricTransactionsRecorded)

	s.notifyOwner(ctx, form, created)
	return created, nil
}

// notifyOwner enqueues a notification for the form owner. Failures here are
// logged and dropped, the recorded transaction stands either way.
func (s *PaymentService) notifyOwner(ctx context.Context, form *model.PaymentForm, tx *model.Transaction) {
	owner, err := s.userRepo.GetByID(ctx, form.OwnerID)
	if err != nil {
		logger.Error("resolving form owner for notification failed",
			"form_id", form.ID, "owner_id", form.OwnerID, "transaction_id", tx.ID, "error", err)
		return
	}

	notification := model.PaymentNotification{
		OwnerEmail:  owner.Email,
		FormName:    form.Name,
		Transaction: *tx,
	}

	if _, err := s.publisher.PublishJSON(ctx, notification, map[string]string{"type": "payment"}); err != nil {
		logger.Error("enqueueing owner notification failed",
			"form_id", form.ID, "transaction_id", tx.ID, "error", err)
	}
}

// ListTransactions returns every transaction recorded against the form, in
// recording order. Only the form owner may read them.
func (s *PaymentService) ListTransactions(ctx context.Context, formID, requesterID int64) ([]*model.Transaction, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	if form.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	return s.txRepo.ListByForm(ctx, formID)
}
