package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

// TelegramSender sends messages via Telegram Bot API.
type TelegramSender struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewTelegramSender creates a new Telegram sender.
func NewTelegramSender(botToken, chatID string) *TelegramSender {
	return &TelegramSender{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage sends an HTML-formatted message to the configured chat.
func (t *TelegramSender) SendMessage(text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	payload := telegramSendRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}

	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}

	return nil
}

// MessageSender is the push surface the balloon channel needs.
type MessageSender interface {
	SendMessage(text string) error
}

// BalloonChannel is the rich push presentation. It applies only to
// reminders that request balloon style, and only when the messaging
// channel is configured.
type BalloonChannel struct {
	sender MessageSender
	now    func() time.Time
}

// NewBalloonChannel wraps sender; pass nil when Telegram is not
// configured and the channel will decline every reminder.
func NewBalloonChannel(sender MessageSender) *BalloonChannel {
	return &BalloonChannel{sender: sender, now: time.Now}
}

func (c *BalloonChannel) Name() string { return "balloon" }

func (c *BalloonChannel) Deliver(r reminder.Reminder) bool {
	if c.sender == nil || !r.UseBalloonStyle {
		return false
	}

	text := fmt.Sprintf("<b>⏰ %s</b>", r.Title)
	if r.Description != "" {
		text += fmt.Sprintf("\n<i>%s</i>", r.Description)
	}
	// Reminder metadata rides along as an opaque trailer.
	text += fmt.Sprintf("\n<code>%s %s %s</code>",
		r.Type, r.ID, c.now().UTC().Format(time.RFC3339))

	if err := c.sender.SendMessage(text); err != nil {
		log.Printf("[notify] balloon delivery failed: %v", err)
		return false
	}
	return true
}
