package v1

import (
	"time"
)

// LocationSampleRequest DTO для показания геолокации
// @Description DTO для показания геолокации. Скорость передается в м/с, как ее отдает устройство.
type LocationSampleRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude" validate:"latitude"`
	Longitude float64   `json:"longitude" validate:"longitude"`
	SpeedMps  *float64  `json:"speed_mps" validate:"omitempty,gte=0"`
}

// ParkingEventResponse DTO для ответа на показание геолокации
// @Description DTO для ответа на показание геолокации
type ParkingEventResponse struct {
	Parked    bool       `json:"parked"`
	Latitude  float64    `json:"latitude,omitempty"`
	Longitude float64    `json:"longitude,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// CheckInResponseRequest DTO для ответа пользователя доверенным клиентом
// @Description DTO для ответа пользователя доверенным клиентом
type CheckInResponseRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	NotificationID string `json:"notification_id" validate:"required"`
	Accepted       *bool  `json:"accepted" validate:"required"`
}

// DeadlineTimeoutRequest DTO для внешнего сигнала таймаута
// @Description DTO для внешнего сигнала таймаута
type DeadlineTimeoutRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	NotificationID string `json:"notification_id" validate:"required"`
}

// ActionRequest DTO для нажатия кнопки уведомления
// @Description DTO для нажатия кнопки уведомления с подписанным токеном
type ActionRequest struct {
	Token string `json:"token" validate:"required"`
}

// AppliedResponse DTO: был ли сигнал применен или проигнорирован как устаревший
// @Description DTO: был ли сигнал применен или проигнорирован как устаревший
type AppliedResponse struct {
	Applied bool `json:"applied"`
}

// UserStatusResponse DTO для статуса пользователя
// @Description DTO для статуса пользователя
type UserStatusResponse struct {
	UserID      string     `json:"user_id"`
	Status      string     `json:"status,omitempty"`
	LastCheckIn *time.Time `json:"last_check_in,omitempty"`
}

// FamilyMemberResponse DTO для участника семьи
// @Description DTO для участника семьи
type FamilyMemberResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}
