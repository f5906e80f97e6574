package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Kept a little under the Cloud API's 4096 hard cap so template framing
// added server-side never tips a segment over the limit.
const whatsappMaxMessageLen = 3800

// WhatsApp delivers messages through the WhatsApp Cloud API.
type WhatsApp struct {
	phoneNumberID string
	recipient     string
	client        *resty.Client
}

// NewWhatsApp creates a WhatsApp transport. timeout bounds each send.
func NewWhatsApp(phoneNumberID, accessToken, recipient string, timeout time.Duration) *WhatsApp {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetBaseURL("https://graph.facebook.com/v19.0")
	client.SetAuthToken(accessToken)

	return &WhatsApp{phoneNumberID: phoneNumberID, recipient: recipient, client: client}
}

// Send posts one text message to the configured recipient.
func (w *WhatsApp) Send(ctx context.Context, text string) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"messaging_product": "whatsapp",
			"to":                w.recipient,
			"type":              "text",
			"text":              map[string]string{"body": text},
		}).
		Post(fmt.Sprintf("/%s/messages", w.phoneNumberID))
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	if resp.StatusCode()/100 != 2 {
		return fmt.Errorf("whatsapp send: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// MaxMessageLen implements Notifier.
func (w *WhatsApp) MaxMessageLen() int {
	return whatsappMaxMessageLen
}
