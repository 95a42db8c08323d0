package fixtures

import (
	"time"

	"github.com/payformhq/payform/internal/model"
)

var (
	TestOwner = model.User{
		ID:           1,
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$2a$04$fixturefixturefixturefuJqL0e9uG1I0nC9eGm1q1vXKqkC8G9S",
	}

	TestOtherUser = model.User{
		ID:           2,
		Name:         "Grace Hopper",
		Email:        "grace@example.com",
		PasswordHash: "$2a$04$fixturefixturefixturefuJqL0e9uG1I0nC9eGm1q1vXKqkC8G9T",
	}
)

func NewTestForm(ownerID int64, name, slug string) *model.PaymentForm {
	return &model.PaymentForm{
		Name:      name,
		Amount:    10,
		Currency:  "USD",
		OwnerID:   ownerID,
		Slug:      slug,
		CreatedAt: time.Now(),
	}
}

func NewTestPaymentRequest(payerEmail string, amount float64, currency string) model.PaymentRequest {
	return model.PaymentRequest{
		PayerEmail: payerEmail,
		AmountPaid: amount,
		Currency:   currency,
	}
}

func NewTestTransaction(formID int64, payerEmail string, amount float64) *model.Transaction {
	return &model.Transaction{
		FormID:     formID,
		PayerEmail: payerEmail,
		AmountPaid: amount,
		Currency:   "USD",
		CreatedAt:  time.Now(),
	}
}
