package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	notificationQueueKey = "notification_events"
)

// EventKind - тип уведомления для push-шлюза
type EventKind string

const (
	KindCheckInPrompt EventKind = "checkin_prompt"
	KindPromptCancel  EventKind = "checkin_prompt_cancel"
	KindFamilyAlert   EventKind = "family_alert"
)

// Action - кнопка уведомления с подписанным токеном
type Action struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Token string `json:"token"`
}

// NotificationEvent - структура для данных вебхука
type NotificationEvent struct {
	Kind           EventKind `json:"kind"`
	NotificationID string    `json:"notification_id"`
	RecipientID    string    `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	SubjectID      string    `json:"subject_id"`
	SubjectName    string    `json:"subject_name,omitempty"`
	Title          string    `json:"title,omitempty"`
	Body           string    `json:"body,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Actions        []Action  `json:"actions,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher - интерфейс для публикации уведомлений
type Publisher interface {
	Publish(ctx context.Context, event NotificationEvent) error
}

// RedisPublisher - реализация Publisher, использующая Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification event to Redis: %w", err)
	}
	return nil
}
