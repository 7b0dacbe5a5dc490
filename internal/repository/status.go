package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/service"
)

// Маркеры ответов нужны только для отсева повторных доставок
const respondedMarkerTTL = 30 * 24 * time.Hour

func statusKey(userID string) string {
	return fmt.Sprintf("users/%s/status", userID)
}

func lastCheckInKey(userID string) string {
	return fmt.Sprintf("users/%s/lastCheckIn", userID)
}

func respondedKey(userID, notificationID string) string {
	return fmt.Sprintf("users/%s/notifications/%s/responded", userID, notificationID)
}

// StatusRepository хранит статус пользователя в Redis. Каждое поле - отдельный ключ,
// поэтому одновременные записи разрешаются по принципу "последняя побеждает".
type StatusRepository struct {
	redisClient redis.Cmdable
}

func NewStatusRepository(redisClient redis.Cmdable) service.StatusStore {
	return &StatusRepository{
		redisClient: redisClient,
	}
}

// GetStatus возвращает пустой статус, если ключ отсутствует
func (r *StatusRepository) GetStatus(ctx context.Context, userID string) (models.ResponseStatus, error) {
	val, err := r.redisClient.Get(ctx, statusKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get status: %w", err)
	}
	return parseStatus(val)
}

func (r *StatusRepository) SetStatus(ctx context.Context, userID string, status models.ResponseStatus) error {
	if err := r.redisClient.Set(ctx, statusKey(userID), string(status), 0).Err(); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

func (r *StatusRepository) SetLastCheckIn(ctx context.Context, userID string, at time.Time) error {
	if err := r.redisClient.Set(ctx, lastCheckInKey(userID), at.UTC().Format(time.RFC3339), 0).Err(); err != nil {
		return fmt.Errorf("failed to set last check-in: %w", err)
	}
	return nil
}

// MarkNotificationResponded использует SETNX: true только у первого ответа
func (r *StatusRepository) MarkNotificationResponded(ctx context.Context, userID, notificationID string) (bool, error) {
	first, err := r.redisClient.SetNX(ctx, respondedKey(userID, notificationID), true, respondedMarkerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark notification as responded: %w", err)
	}
	return first, nil
}

// GetUserStatus читает статус и время последнего подтверждения одним MGET
func (r *StatusRepository) GetUserStatus(ctx context.Context, userID string) (*models.UserStatus, error) {
	vals, err := r.redisClient.MGet(ctx, statusKey(userID), lastCheckInKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user status: %w", err)
	}

	us := &models.UserStatus{UserID: userID}
	if s, ok := vals[0].(string); ok {
		status, err := parseStatus(s)
		if err != nil {
			return nil, err
		}
		us.Status = status
	}
	if s, ok := vals[1].(string); ok {
		at, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last check-in %q: %w", s, err)
		}
		us.LastCheckIn = &at
	}
	return us, nil
}

func parseStatus(val string) (models.ResponseStatus, error) {
	switch s := models.ResponseStatus(val); s {
	case models.StatusOK, models.StatusPending, models.StatusAlert:
		return s, nil
	default:
		return "", fmt.Errorf("unknown status %q", val)
	}
}
