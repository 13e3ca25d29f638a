package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/logger"
)

type NotificationService struct {
	config *config.Config
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		config: cfg,
	}
}

// NotifyRunComplete sends notifications when a discovery or enrichment run
// finishes. Each channel is independent; a failed send is logged and the
// rest still go out.
func (ns *NotificationService) NotifyRunComplete(title, message string) {
	if !ns.config.Notifications.Enabled || !ns.config.Notifications.NotifyOnComplete {
		return
	}

	if ns.config.Notifications.SystemNotify {
		ns.sendSystemNotification(message, title)
	}

	if ns.config.Notifications.DiscordWebhook != "" {
		ns.sendDiscordNotification(message, title)
	}

	if ns.config.Notifications.TelegramBotToken != "" && ns.config.Notifications.TelegramChatID != "" {
		ns.sendTelegramNotification(fmt.Sprintf("%s\n%s", title, message))
	}
}

func (ns *NotificationService) sendSystemNotification(message, title string) {
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Logger.Printf("Failed to send system notification: %v", err)
	}
}

func (ns *NotificationService) sendDiscordNotification(message, title string) {
	type DiscordEmbed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Color       int    `json:"color"`
		Timestamp   string `json:"timestamp"`
	}

	type DiscordWebhookPayload struct {
		Embeds []DiscordEmbed `json:"embeds"`
	}

	payload := DiscordWebhookPayload{
		Embeds: []DiscordEmbed{{
			Title:       title,
			Description: message,
			Color:       3447003, // Blue
			Timestamp:   time.Now().Format(time.RFC3339),
		}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Printf("Failed to marshal Discord payload: %v", err)
		return
	}
	resp, err := http.Post(ns.config.Notifications.DiscordWebhook, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		logger.Logger.Printf("Failed to send Discord notification: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.Logger.Printf("Discord webhook returned status: %d", resp.StatusCode)
	}
}

func (ns *NotificationService) sendTelegramNotification(message string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", ns.config.Notifications.TelegramBotToken)
	type TelegramPayload struct {
		ChatID    string `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode"`
	}
	payload := TelegramPayload{
		ChatID:    ns.config.Notifications.TelegramChatID,
		Text:      message,
		ParseMode: "HTML",
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Printf("Failed to marshal Telegram payload: %v", err)
		return
	}
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		logger.Logger.Printf("Failed to send Telegram notification: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logger.Logger.Printf("Telegram API returned status: %d", resp.StatusCode)
	}
}
