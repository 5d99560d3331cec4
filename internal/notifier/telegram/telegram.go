// Package telegram implements a Telegram Bot API notifier
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier"
)

// Telegram implements the Notifier interface for Telegram Bot API
type Telegram struct {
	botToken string
	chatID   string
	client   *http.Client
}

// New creates a new Telegram notifier
func New(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Init(cfg notifier.Config) error {
	if token, ok := cfg.Params["bot_token"].(string); ok {
		t.botToken = token
	}
	if chatID, ok := cfg.Params["chat_id"].(string); ok {
		t.chatID = chatID
	}

	if t.botToken == "" {
		return fmt.Errorf("telegram: bot_token is required")
	}
	if t.chatID == "" {
		return fmt.Errorf("telegram: chat_id is required")
	}

	if t.client == nil {
		t.client = &http.Client{Timeout: 30 * time.Second}
	}

	return nil
}

func (t *Telegram) Send(alert notifier.Alert) error {
	message := t.formatAlert(alert)
	return t.sendMessage(message)
}

func (t *Telegram) SendBatch(alerts []notifier.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏠 *%d Deal Alerts*\n\n", len(alerts)))

	for i, a := range alerts {
		sb.WriteString(t.formatAlert(a))
		if i < len(alerts)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return t.sendMessage(sb.String())
}

func (t *Telegram) formatAlert(alert notifier.Alert) string {
	var sb strings.Builder

	profitEmoji := "📈"
	if alert.Profit.IsNegative() {
		profitEmoji = "📉"
	}

	sb.WriteString(fmt.Sprintf("%s *%s, %s, %s*\n", profitEmoji, alert.Address, alert.City, alert.State))
	sb.WriteString(fmt.Sprintf("🏷️ %s - grade %s\n", alert.Strategy, alert.Grade))
	sb.WriteString(fmt.Sprintf("💰 Profit: %s (ROI %.1f%%)\n", alert.Profit, alert.ROI))

	if alert.Matches > 0 {
		sb.WriteString(fmt.Sprintf("🤝 Buyer matches: %d\n", alert.Matches))
	}

	if alert.Message != "" {
		sb.WriteString(fmt.Sprintf("💡 %s\n", alert.Message))
	}

	sb.WriteString(fmt.Sprintf("⏰ Time: %s", alert.GeneratedAt.Format("2006-01-02 15:04:05")))

	return sb.String()
}

func (t *Telegram) sendMessage(text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	payload := map[string]any{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: failed to marshal payload: %w", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("telegram: API error (status %d): %v", resp.StatusCode, result)
	}

	return nil
}
