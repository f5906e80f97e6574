package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Telegram's Bot API caps sendMessage text at 4096 characters.
const telegramMaxMessageLen = 4096

// Telegram delivers messages through the Bot API to a fixed chat.
type Telegram struct {
	botToken string
	chatID   string
	client   *resty.Client
}

// NewTelegram creates a Telegram transport. timeout bounds each send.
func NewTelegram(botToken, chatID string, timeout time.Duration) *Telegram {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetBaseURL("https://api.telegram.org")

	return &Telegram{botToken: botToken, chatID: chatID, client: client}
}

// Send posts one message. A non-2xx status is a delivery failure; the
// dispatcher decides what happens next (it halts).
func (t *Telegram) Send(ctx context.Context, text string) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"chat_id": t.chatID,
			"text":    text,
		}).
		Post(fmt.Sprintf("/bot%s/sendMessage", t.botToken))
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if resp.StatusCode()/100 != 2 {
		return fmt.Errorf("telegram send: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// MaxMessageLen implements Notifier.
func (t *Telegram) MaxMessageLen() int {
	return telegramMaxMessageLen
}
