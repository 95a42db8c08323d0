package model

import (
	"errors"
	"net/mail"
	"time"
)

// Transaction is an append-only record of a payment made against a form.
// Once created it is never mutated or deleted. Amount and currency are
// recorded as submitted; they are deliberately not validated against the
// form's nominal amount/currency.
type Transaction struct {
	ID         int64        `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	FormID     int64        `json:"form_id"     db:"form_id"     gorm:"column:form_id;not null;index"`
	Form       *PaymentForm `json:"-"                            gorm:"foreignKey:FormID;references:ID;constraint:OnDelete:CASCADE"`
	PayerEmail string       `json:"payer_email" db:"payer_email" gorm:"column:payer_email;not null"`
	AmountPaid float64      `json:"amount_paid" db:"amount_paid" gorm:"column:amount_paid;not null"`
	Currency   string       `json:"currency"    db:"currency"    gorm:"column:currency;not null"`
	CreatedAt  time.Time    `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// PaymentRequest is the input for submitting a payment against a form.
type PaymentRequest struct {
	PayerEmail string
	AmountPaid float64
	Currency   string
}

func (p PaymentRequest) Validate() error {
	if p.PayerEmail == "" {
		return errors.New("payer_email is required")
	}
	if _, err := mail.ParseAddress(p.PayerEmail); err != nil {
		return errors.New("payer_email is invalid")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}
