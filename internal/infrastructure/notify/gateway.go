// Package notify integrates the communications gateway that handles
// outbound SMS and care-team call scheduling.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hearth-labs/hearth/internal/shared/config"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

const defaultRequestTimeout = 10 * time.Second

// GatewayClient talks to the comms gateway. The gateway exposes one
// endpoint per channel; authentication is a bearer key.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	logger     logger.Interface
}

func NewGatewayClient(cfg config.SMSConfig, log logger.Interface) *GatewayClient {
	return &GatewayClient{
		baseURL: cfg.GatewayURL,
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		logger: log,
	}
}

type smsRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

type callRequest struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}

// SendRetentionSMS delivers one text message through the gateway.
func (c *GatewayClient) SendRetentionSMS(ctx context.Context, phone, message string) error {
	payload := smsRequest{
		From:    c.from,
		To:      phone,
		Message: message,
	}
	if err := c.post(ctx, "/v1/sms", payload); err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	c.logger.Debugw("retention sms dispatched", "to", phone)
	return nil
}

// ScheduleRetentionCall books a care-team outreach call.
func (c *GatewayClient) ScheduleRetentionCall(ctx context.Context, userID uint, name, phone string) error {
	payload := callRequest{
		UserID: userID,
		Name:   name,
		Phone:  phone,
		Reason: "retention",
	}
	if err := c.post(ctx, "/v1/calls", payload); err != nil {
		return fmt.Errorf("failed to schedule call: %w", err)
	}

	c.logger.Infow("retention call scheduled", "user_id", userID)
	return nil
}

func (c *GatewayClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
