package model

// PaymentNotification is the queue payload produced after a transaction is
// recorded. Delivery is best effort, the transaction row is the source of
// truth regardless of what happens to this payload.
type PaymentNotification struct {
	OwnerEmail  string      `json:"owner_email"`
	FormName    string      `json:"form_name"`
	Transaction Transaction `json:"transaction"`
}
