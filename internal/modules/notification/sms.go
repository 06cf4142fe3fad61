package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// SMSGateway is the provider-agnostic interface an SMS adapter implements.
type SMSGateway interface {
	Send(ctx context.Context, phone, message string) error
}

// httpSMSGateway posts messages to a REST SMS provider.
type httpSMSGateway struct {
	apiKey    string
	apiSecret string
	baseURL   string
	senderID  string
	client    *http.Client
}

func NewHTTPSMSGateway(apiKey, apiSecret, baseURL, senderID string) SMSGateway {
	return &httpSMSGateway{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
		senderID:  senderID,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *httpSMSGateway) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return fmt.Errorf("phone number is required for SMS")
	}
	if g.baseURL == "" {
		return fmt.Errorf("sms gateway is not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"from":    g.senderID,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", g.apiKey)
	req.Header.Set("X-API-Secret", g.apiSecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}

// SendSMSWithRetry retries an SMS send with exponential backoff.
func SendSMSWithRetry(ctx context.Context, gw SMSGateway, phone, message string, retries int) error {
	operation := func() error {
		return gw.Send(ctx, phone, message)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = time.Duration(retries) * time.Second

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
