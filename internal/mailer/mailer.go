package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/payformhq/payform/pkg/logger"
	"github.com/valyala/fasthttp"
)

var (
	ErrRelayUnavailable = errors.New("mail relay unavailable")
)

// Config holds the outbound mail-relay settings. Constructed explicitly at
// startup and passed in, never read from ambient state.
type Config struct {
	RelayURL    string
	APIKey      string
	FromAddress string
	Timeout     time.Duration
}

// SendRequest is the JSON body posted to the mail relay.
type SendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// Client delivers mail through an HTTP relay API.
type Client struct {
	config Config
	client *fasthttp.Client
}

func NewClient(config Config) (*Client, error) {
	if config.RelayURL == "" {
		return nil, errors.New("relay URL is required")
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}

	return &Client{
		config: config,
		client: &fasthttp.Client{
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}, nil
}

// Send posts one message to the relay. The internal timeout bounds the call
// so a slow relay cannot pin a worker.
func (c *Client) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	if req.From == "" {
		req.From = c.config.FromAddress
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal send request: %w", err)
	}

	httpReq := fasthttp.AcquireRequest()
	httpResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(httpReq)
	defer fasthttp.ReleaseResponse(httpResp)

	httpReq.SetRequestURI(c.config.RelayURL)
	httpReq.Header.SetMethod(fasthttp.MethodPost)
	httpReq.Header.SetContentType("application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	httpReq.SetBody(body)

	deadline := time.Now().Add(c.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.client.DoDeadline(httpReq, httpResp, deadline); err != nil {
		logger.Warn("mail relay request failed", "to", req.To, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}

	status := httpResp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: relay returned status %d", ErrRelayUnavailable, status)
	}

	var res SendResponse
	if err := json.Unmarshal(httpResp.Body(), &res); err != nil {
		// Relay accepted the message, treat a bad body as delivered
		return &SendResponse{Status: "accepted"}, nil
	}
	return &res, nil
}
