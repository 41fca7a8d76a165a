package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aluna-health/aluna/internal/services"
	"go.uber.org/zap"
)

// TelegramDelivery stores reminder descriptors and pushes the ones whose
// trigger time has passed through the Telegram bot API. A ticker loop stands
// in for an OS alarm subsystem.
type TelegramDelivery struct {
	botToken string
	chatID   string
	client   *http.Client
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]services.SmartNotification
}

func NewTelegramDelivery(botToken string, chatID string, logger *zap.Logger) *TelegramDelivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelegramDelivery{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 8 * time.Second},
		logger:   logger,
		pending:  make(map[string]services.SmartNotification),
	}
}

func (delivery *TelegramDelivery) CancelAll(_ context.Context, ids []string) error {
	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	for _, id := range ids {
		delete(delivery.pending, id)
	}
	return nil
}

func (delivery *TelegramDelivery) ScheduleAll(_ context.Context, notifications []services.SmartNotification) error {
	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	for _, notification := range notifications {
		if notification.IsEnabled {
			delivery.pending[notification.ID] = notification
		}
	}
	return nil
}

// Start fires due reminders once per minute until the context is cancelled.
func (delivery *TelegramDelivery) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				delivery.fireDue(ctx, time.Now())
			}
		}
	}()
}

func (delivery *TelegramDelivery) fireDue(ctx context.Context, now time.Time) {
	due := delivery.takeDue(now)
	for _, notification := range due {
		message := fmt.Sprintf("%s\n%s", notification.Title, notification.Body)
		if err := delivery.send(ctx, message); err != nil {
			delivery.logger.Warn("telegram send failed",
				zap.String("id", notification.ID),
				zap.Error(err),
			)
		}
	}
}

func (delivery *TelegramDelivery) takeDue(now time.Time) []services.SmartNotification {
	delivery.mu.Lock()
	defer delivery.mu.Unlock()

	due := make([]services.SmartNotification, 0)
	for id, notification := range delivery.pending {
		if notification.TriggerAt.After(now) {
			continue
		}
		due = append(due, notification)
		if !notification.RepeatDaily {
			delete(delivery.pending, id)
		} else {
			notification.TriggerAt = notification.TriggerAt.AddDate(0, 0, 1)
			delivery.pending[id] = notification
		}
	}
	return due
}

func (delivery *TelegramDelivery) send(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", delivery.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", delivery.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := delivery.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
