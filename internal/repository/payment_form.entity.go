package repository

import (
	"time"

	"github.com/payformhq/payform/internal/model"
)

type PaymentFormEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `db:"name"        gorm:"column:name;not null"`
	Description string    `db:"description" gorm:"column:description"`
	Amount      float64   `db:"amount"      gorm:"column:amount;not null"`
	Currency    string    `db:"currency"    gorm:"column:currency;not null"`
	OwnerID     int64     `db:"owner_id"    gorm:"column:owner_id;not null;index"`
	Slug        string    `db:"slug"        gorm:"column:slug;not null;uniqueIndex"`
	CreatedAt   time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (PaymentFormEntity) TableName() string {
	return "payment_forms"
}

func toPaymentFormEntity(m *model.PaymentForm) *PaymentFormEntity {
	if m == nil {
		return nil
	}
	return &PaymentFormEntity{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Amount:      m.Amount,
		Currency:    m.Currency,
		OwnerID:     m.OwnerID,
		Slug:        m.Slug,
		CreatedAt:   m.CreatedAt,
	}
}

func toPaymentFormModel(e *PaymentFormEntity) *model.PaymentForm {
	if e == nil {
		return nil
	}
	return &model.PaymentForm{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		OwnerID:     e.OwnerID,
		Slug:        e.Slug,
		CreatedAt:   e.CreatedAt,
	}
}

func toPaymentFormModels(entities []*PaymentFormEntity) []*model.PaymentForm {
	if entities == nil {
		return nil
	}
	models := make([]*model.PaymentForm, len(entities))
	for i, e := range entities {
		models[i] = toPaymentFormModel(e)
	}
	return models
}
