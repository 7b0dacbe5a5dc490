package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/sirupsen/logrus"
)

// Channel - канал доставки уведомления конечному получателю
type Channel interface {
	Name() string
	Accepts(event NotificationEvent) bool
	Deliver(ctx context.Context, event NotificationEvent, rawPayload string) error
}

// Worker - структура для обработки очереди уведомлений
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	channels    []Channel
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config, channels ...Channel) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		channels:    channels,
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка (очереди)
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop notification event from Redis")
					time.Sleep(w.cfg.WebhookTimeout) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var event NotificationEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal notification event from Redis")
					continue
				}

				w.processEvent(ctx, event, payload)
			}
		}
	}()
}

// processEvent отдает событие всем подходящим каналам; ошибка одного канала не мешает остальным
func (w *Worker) processEvent(ctx context.Context, event NotificationEvent, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"event_kind":      event.Kind,
		"recipient_id":    event.RecipientID,
		"notification_id": event.NotificationID,
	})
	log.Debug("Processing notification event...")

	delivered := 0
	for _, ch := range w.channels {
		if !ch.Accepts(event) {
			continue
		}
		if err := ch.Deliver(ctx, event, rawPayload); err != nil {
			log.WithError(err).WithField("channel", ch.Name()).Error("Failed to deliver notification")
			continue
		}
		delivered++
	}

	if delivered == 0 {
		log.Warn("Notification was not delivered by any channel")
	}
}

// WebhookChannel отправляет событие в push-шлюз POST-запросом с HMAC-подписью
type WebhookChannel struct {
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
}

// NewWebhookChannel создает канал доставки через push-шлюз
func NewWebhookChannel(logger *logrus.Logger, cfg *config.Config) *WebhookChannel {
	return &WebhookChannel{
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

func (c *WebhookChannel) Name() string {
	return "webhook"
}

func (c *WebhookChannel) Accepts(NotificationEvent) bool {
	return c.cfg.WebhookURL != ""
}

// Deliver отправляет событие с экспоненциальной задержкой между попытками
func (c *WebhookChannel) Deliver(ctx context.Context, event NotificationEvent, rawPayload string) error {
	log := c.logger.WithField("recipient_id", event.RecipientID).WithField("event_kind", event.Kind)

	maxRetries := max(c.cfg.WebhookMaxRetries, 1)
	baseDelay := c.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		status, err := c.send(ctx, rawPayload)
		if err == nil && status >= 200 && status < 300 {
			log.Info("Webhook delivered successfully.")
			return nil
		}

		retriesLeft := maxRetries - 1 - i
		if err != nil {
			log.WithError(err).Warnf("Failed to send webhook. Retrying in %v. Retries left: %d", baseDelay, retriesLeft)
		} else {
			log.Warnf("Webhook delivery failed with status code %d. Retrying in %v. Retries left: %d", status, baseDelay, retriesLeft)
		}
		if retriesLeft == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay):
		}
		baseDelay *= 2 // Экспоненциальная задержка
	}

	return fmt.Errorf("failed to deliver webhook after %d retries", maxRetries)
}

func (c *WebhookChannel) send(ctx context.Context, rawPayload string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return 0, fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if c.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, c.cfg.WebhookSecret))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
