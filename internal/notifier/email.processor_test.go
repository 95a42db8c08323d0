package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/payformhq/payform/internal/mailer"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, req *mailer.SendRequest) (*mailer.SendResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailer.SendResponse), args.Error(1)
}

func notificationMessage(t *testing.T) *queue.Message {
	t.Helper()
	data, err := json.Marshal(model.PaymentNotification{
		OwnerEmail: "owner@example.com",
		FormName:   "Donations",
		Transaction: model.Transaction{
			ID:         1,
			FormID:     42,
			PayerEmail: "payer@example.com",
			AmountPaid: 25.5,
			Currency:   "EUR",
		},
	})
	require.NoError(t, err)
	return &queue.Message{ID: "1-0", Data: data}
}

func TestEmailProcessor_Process(t *testing.T) {
	t.Run("delivers owner email", func(t *testing.T) {
		m := new(MockMailer)
		m.On("Send", mock.Anything, mock.MatchedBy(func(req *mailer.SendRequest) bool {
			return req.To == "owner@example.com" &&
				req.Subject == `Payment received on "Donations"`
		})).Return(&mailer.SendResponse{MessageID: "m-1", Status: "queued"}, nil)

		p := NewEmailProcessor(m)
		err := p.Process(context.Background(), notificationMessage(t))
		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("body names payer, amount and form", func(t *testing.T) {
		m := new(MockMailer)
		var body string
		m.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			body = args.Get(1).(*mailer.SendRequest).Body
		}).Return(&mailer.SendResponse{}, nil)

		p := NewEmailProcessor(m)
		require.NoError(t, p.Process(context.Background(), notificationMessage(t)))
		assert.Contains(t, body, "25.50 EUR")
		assert.Contains(t, body, "Donations")
		assert.Contains(t, body, "payer@example.com")
	})

	t.Run("delivery failure is absorbed", func(t *testing.T) {
		// A single attempt per notification, the message is acked even when
		// the relay is down.
		m := new(MockMailer)
		m.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("relay down"))

		p := NewEmailProcessor(m)
		err := p.Process(context.Background(), notificationMessage(t))
		assert.NoError(t, err)
	})

	t.Run("malformed payload is absorbed", func(t *testing.T) {
		m := new(MockMailer)

		p := NewEmailProcessor(m)
		err := p.Process(context.Background(), &queue.Message{ID: "2-0", Data: []byte("not-json")})
		assert.NoError(t, err)
		m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
