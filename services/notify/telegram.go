package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MarcGrol/onlineshop/lib/myhttpclient"
	"github.com/MarcGrol/onlineshop/lib/mylog"
)

const (
	TelegramBaseURL = "https://api.telegram.org"
	TelegramTimeout = 10 * time.Second
)

// TelegramNotifier posts HTML formatted messages to one chat through the Bot API.
type TelegramNotifier struct {
	sender  myhttpclient.HTTPSender
	baseURL string
	token   string
	chatID  string
	logger  mylog.Logger
}

func NewTelegramNotifier(sender myhttpclient.HTTPSender, baseURL string, token string, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		sender:  sender,
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		logger:  mylog.New("telegram"),
	}
}

// Send is skipped when the bot is not configured.
func (t *TelegramNotifier) Send(c context.Context, text string) error {
	if t.token == "" || t.chatID == "" {
		t.logger.Log(c, "", mylog.SeverityWarn, "Telegram credentials not set: message not sent")
		return nil
	}

	status, body, err := t.sender.PostForm(c, fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token), url.Values{
		"chat_id":    {t.chatID},
		"text":       {text},
		"parse_mode": {"HTML"},
	})
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("telegram send failed with status %d: %s", status, truncate(string(body), 200))
	}

	t.logger.Log(c, "", mylog.SeverityInfo, "Telegram message sent to chat %s", t.chatID)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
