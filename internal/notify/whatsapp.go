package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppGateway sends messages through an external WhatsApp HTTP
// gateway. The session and reconnect logic live in the gateway process,
// not here.
type WhatsAppGateway struct {
	url    string
	token  string
	client *http.Client
}

func NewWhatsAppGateway(url, token string) *WhatsAppGateway {
	return &WhatsAppGateway{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *WhatsAppGateway) IsReady() bool {
	return g != nil && g.url != ""
}

type gatewayMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (g *WhatsAppGateway) Send(ctx context.Context, recipient, message string) error {
	if !g.IsReady() {
		return fmt.Errorf("whatsapp gateway not configured")
	}

	payload := gatewayMessage{
		To:      nonDigits.ReplaceAllString(recipient, ""),
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned %d", resp.StatusCode)
	}
	return nil
}

var _ Sender = (*WhatsAppGateway)(nil)
