package service

import (
	"context"
	"time"

	"github.com/shenikar/parking_watchdog/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// StatusStore - граница с сохраненным статусом пользователя (users/{id}/...)
type StatusStore interface {
	// GetStatus возвращает пустой статус, если значение отсутствует
	GetStatus(ctx context.Context, userID string) (models.ResponseStatus, error)
	SetStatus(ctx context.Context, userID string, status models.ResponseStatus) error
	SetLastCheckIn(ctx context.Context, userID string, at time.Time) error
	// MarkNotificationResponded возвращает true только для первого вызова с этой парой
	MarkNotificationResponded(ctx context.Context, userID, notificationID string) (bool, error)
	GetUserStatus(ctx context.Context, userID string) (*models.UserStatus, error)
}

// FamilyDirectory - справочник семей, только чтение
type FamilyDirectory interface {
	// FamilyOf возвращает ErrNoFamily, если пользователь не состоит в семье
	FamilyOf(ctx context.Context, userID string) (string, error)
	Members(ctx context.Context, familyID string) ([]models.FamilyMember, error)
}

// EscalationNotifier - выходная граница координатора
type EscalationNotifier interface {
	PromptUser(ctx context.Context, userID, notificationID string) error
	CancelPrompt(ctx context.Context, userID, notificationID string) error
	BroadcastAlert(ctx context.Context, familyID, excludingUserID string, location models.Location) error
}

// CheckInHistory - журнал запросов подтверждения, нужен для восстановления после рестарта
type CheckInHistory interface {
	Open(ctx context.Context, req *models.CheckInRequest) error
	Close(ctx context.Context, notificationID string, state models.RequestState) error
	ListAwaiting(ctx context.Context) ([]*models.CheckInRequest, error)
}

// LocationSource отдает последнюю известную точку пользователя
type LocationSource interface {
	LastKnownLocation(userID string) (models.Location, bool)
}
