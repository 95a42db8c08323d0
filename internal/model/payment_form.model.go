package model

import (
	"errors"
	"time"
)

// PaymentForm is a shareable payment-collection form. The slug is the only
// identifier meant for public addressing; the numeric id remains exposed on
// a legacy payment path.
type PaymentForm struct {
	ID          int64     `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `json:"name"        db:"name"        gorm:"column:name;not null"`
	Description string    `json:"description" db:"description" gorm:"column:description"`
	Amount      float64   `json:"amount"      db:"amount"      gorm:"column:amount;not null"`
	Currency    string    `json:"currency"    db:"currency"    gorm:"column:currency;not null"`
	OwnerID     int64     `json:"owner_id"    db:"owner_id"    gorm:"column:owner_id;not null;index"`
	Owner       *User     `json:"-"                            gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
	Slug        string    `json:"slug"        db:"slug"        gorm:"column:slug;not null;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (PaymentForm) TableName() string { return "payment_forms" }

// FormCreateRequest is the input for creating a payment form. Amount is the
// nominal/suggested amount, it is not enforced against actual payments.
type FormCreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Amount      float64
	Currency    string
}

func (p FormCreateRequest) Validate() error {
	if p.OwnerID == 0 {
		return errors.New("owner_id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}
