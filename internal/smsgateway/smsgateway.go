package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Client dispatches transactional SMS through the external gateway's JSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sender     string
	routeType  string
}

// NewClient reads the gateway endpoint from config and the api key from the
// environment.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    viper.GetString("sms.base_url"),
		apiKey:     os.Getenv("SMS_API_KEY"),
		sender:     viper.GetString("sms.sender_id"),
		routeType:  viper.GetString("sms.route_type"),
	}
}

type sendRequest struct {
	Sender string   `json:"sender"`
	To     []string `json:"to"`
	Text   string   `json:"text"`
	Type   string   `json:"type"`
}

// SendOTP delivers a verification code to the given phone number.
func (c *Client) SendOTP(ctx context.Context, phoneNumber, code string) error {
	body, err := json.Marshal(sendRequest{
		Sender: c.sender,
		To:     []string{phoneNumber},
		Text:   fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
		Type:   c.routeType,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms gateway responded with status %d", resp.StatusCode)
	}

	return nil
}
