package repository

import (
	"time"

	"github.com/payformhq/payform/internal/model"
)

type TransactionEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	FormID     int64     `db:"form_id"     gorm:"column:form_id;not null;index"`
	PayerEmail string    `db:"payer_email" gorm:"column:payer_email;not null"`
	AmountPaid float64   `db:"amount_paid" gorm:"column:amount_paid;not null"`
	Currency   string    `db:"currency"    gorm:"column:currency;not null"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:         m.ID,
		FormID:     m.FormID,
		PayerEmail: m.PayerEmail,
		AmountPaid: m.AmountPaid,
		Currency:   m.Currency,
		CreatedAt:  m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:         e.ID,
		FormID:     e.FormID,
		PayerEmail: e.PayerEmail,
		AmountPaid: e.AmountPaid,
		Currency:   e.Currency,
		CreatedAt:  e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
