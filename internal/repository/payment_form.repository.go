package repository

import (
	"context"
	"errors"

	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrFormNotFound is returned when a payment form does not exist.
	ErrFormNotFound = errors.New("payment form not found")
	// ErrSlugTaken is returned when the generated slug already exists.
	ErrSlugTaken = errors.New("slug already exists")
)

type PaymentFormRepository struct {
	*pg.DB
}

func NewPaymentFormRepository(db *pg.DB) *PaymentFormRepository {
	return &PaymentFormRepository{
		db,
	}
}

func (r *PaymentFormRepository) Create(ctx context.Context, form *model.PaymentForm) (*model.PaymentForm, error) {
	entity := toPaymentFormEntity(form)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return toPaymentFormModel(entity), nil
}

func (r *PaymentFormRepository) GetBySlug(ctx context.Context, slug string) (*model.PaymentForm, error) {
	var entity PaymentFormEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("slug = ?", slug).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return toPaymentFormModel(&entity), nil
}

func (r *PaymentFormRepository) GetByID(ctx context.Context, id int64) (*model.PaymentForm, error) {
	var entity PaymentFormEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return toPaymentFormModel(&entity), nil
}

func (r *PaymentFormRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.PaymentForm, error) {
	var entities []*PaymentFormEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toPaymentFormModels(entities), nil
}
