package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/repository"
)

var (
	ErrFormNotFound = errors.New("payment form not found")
)

type PaymentFormRepository interface {
	Create(ctx context.Context, form *model.PaymentForm) (*model.PaymentForm, error)
	GetBySlug(ctx context.Context, slug string) (*model.PaymentForm, error)
	GetByID(ctx context.Context, id int64) (*model.PaymentForm, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.PaymentForm, error)
}

// CreatedForm pairs a stored form with the public URL embedding its slug.
type CreatedForm struct {
	Form         *model.PaymentForm `json:"payment_form"`
	ShareableURL string             `json:"shareable_url"`
}

type FormService struct {
	formRepo PaymentFormRepository
	baseURL  string
}

func NewFormService(formRepo PaymentFormRepository, baseURL string) *FormService {
	return &FormService{
		formRepo: formRepo,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Create persists a new payment form with a freshly generated slug. The slug
// is generated per call, a collision in the uuid space is negligible but the
// insert is retried once on the unique constraint anyway.
func (s *FormService) Create(ctx context.Context, p model.FormCreateRequest) (*CreatedForm, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	form := &model.PaymentForm{
		Name:        p.Name,
		Description: p.Description,
		Amount:      p.Amount,
		Currency:    p.Currency,
		OwnerID:     p.OwnerID,
		Slug:        newSlug(),
	}

	created, err := s.formRepo.Create(ctx, form)
	if errors.Is(err, repository.ErrSlugTaken) {
		form.Slug = newSlug()
		created, err = s.formRepo.Create(ctx, form)
	}
	if err != nil {
		return nil, err
	}

	return &CreatedForm{
		Form:         created,
		ShareableURL: s.shareableURL(created.Slug),
	}, nil
}

func (s *FormService) GetBySlug(ctx context.Context, slug string) (*model.PaymentForm, error) {
	form, err := s.formRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

func (s *FormService) GetByID(ctx context.Context, id int64) (*model.PaymentForm, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

func (s *FormService) ListByOwner(ctx context.Context, ownerID int64) ([]*model.PaymentForm, error) {
	return s.formRepo.ListByOwner(ctx, ownerID)
}

func (s *FormService) shareableURL(slug string) string {
	return fmt.Sprintf("%s/api/v1/forms/payment/%s", s.baseURL, slug)
}

func newSlug() string {
	return uuid.New().String()
}
