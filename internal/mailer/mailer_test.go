package mailer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	t.Run("posts message to relay", func(t *testing.T) {
		var got SendRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(SendResponse{MessageID: "m-1", Status: "queued"})
		}))
		defer srv.Close()

		client, err := NewClient(Config{
			RelayURL:    srv.URL,
			APIKey:      "test-key",
			FromAddress: "no-reply@payform.local",
			Timeout:     time.Second,
		})
		require.NoError(t, err)

		res, err := client.Send(context.Background(), &SendRequest{
			To:      "owner@example.com",
			Subject: "Payment received",
			Body:    "10 USD",
		})
		require.NoError(t, err)
		assert.Equal(t, "m-1", res.MessageID)
		assert.Equal(t, "owner@example.com", got.To)
		assert.Equal(t, "no-reply@payform.local", got.From)
	})

	t.Run("non-2xx is a relay error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := NewClient(Config{RelayURL: srv.URL, Timeout: time.Second})
		require.NoError(t, err)

		_, err = client.Send(context.Background(), &SendRequest{To: "owner@example.com"})
		assert.ErrorIs(t, err, ErrRelayUnavailable)
	})

	t.Run("unreachable relay is a relay error", func(t *testing.T) {
		// Reserve a port and close it so nothing is listening.
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := l.Addr().String()
		l.Close()

		client, err := NewClient(Config{RelayURL: "http://" + addr, Timeout: 200 * time.Millisecond})
		require.NoError(t, err)

		_, err = client.Send(context.Background(), &SendRequest{To: "owner@example.com"})
		assert.ErrorIs(t, err, ErrRelayUnavailable)
	})

	t.Run("relay URL required", func(t *testing.T) {
		_, err := NewClient(Config{})
		assert.Error(t, err)
	})
}
