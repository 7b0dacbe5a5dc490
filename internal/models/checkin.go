package models

import (
	"time"
)

// ResponseStatus - сохраненный статус пользователя
type ResponseStatus string

const (
	StatusOK      ResponseStatus = "OK"
	StatusPending ResponseStatus = "PENDING"
	StatusAlert   ResponseStatus = "ALERT"
)

// RequestState - состояние запроса подтверждения
type RequestState string

const (
	StateNone             RequestState = "NONE"
	StateAwaitingResponse RequestState = "AWAITING_RESPONSE"
	StateConfirmed        RequestState = "CONFIRMED"
	StateAlerted          RequestState = "ALERTED"
	// StateSuperseded - запрос вытеснен более новым запросом того же пользователя
	StateSuperseded       RequestState = "SUPERSEDED"
)

// IsTerminal сообщает, закрыт ли запрос
func (s RequestState) IsTerminal() bool {
	return s == StateConfirmed || s == StateAlerted || s == StateSuperseded
}

// CheckInRequest - открытый запрос подтверждения безопасности после парковки
type CheckInRequest struct {
	UserID         string       `json:"user_id"`
	NotificationID string       `json:"notification_id"`
	OpenedAt       time.Time    `json:"opened_at"`
	DeadlineAt     time.Time    `json:"deadline_at"`
	State          RequestState `json:"state"`
	Location       Location     `json:"location"`
}

// UserStatus - проекция сохраненного статуса для чтения
type UserStatus struct {
	UserID      string         `json:"user_id"`
	Status      ResponseStatus `json:"status,omitempty"`
	LastCheckIn *time.Time     `json:"last_check_in,omitempty"`
}
