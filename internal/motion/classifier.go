// Package motion определяет момент парковки по потоку показаний геолокации.
package motion

import (
	"time"

	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/models"
)

// Thresholds - пороги классификатора. Скорости в км/ч.
type Thresholds struct {
	ParkingSpeed        float64
	TripStartSpeed      float64
	StationaryThreshold time.Duration
}

// DefaultThresholds - 5 км/ч, 10 км/ч и одна минута неподвижности
var DefaultThresholds = Thresholds{
	ParkingSpeed:        5,
	TripStartSpeed:      10,
	StationaryThreshold: time.Minute,
}

// ThresholdsFromConfig собирает пороги из конфигурации приложения
func ThresholdsFromConfig(cfg *config.Config) Thresholds {
	return Thresholds{
		ParkingSpeed:        cfg.ParkingSpeedKmh,
		TripStartSpeed:      cfg.TripStartSpeedKmh,
		StationaryThreshold: cfg.StationaryThreshold,
	}
}

// Classifier не хранит состояния: все, что ему нужно, передается в Classify.
type Classifier struct {
	thresholds Thresholds
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Classify применяет одно показание к состоянию пользователя.
// Событие парковки выдается по фронту: один раз на период неподвижности после поездки.
func (c *Classifier) Classify(userID string, sample models.LocationSample, state models.MotionState) (models.MotionState, *models.ParkingEvent) {
	next := state
	next.LastSample = &sample

	// Первое показание только инициализирует состояние
	if state.LastSample == nil {
		next.IsOnTrip = false
		next.StationarySince = sample.Timestamp
		return next, nil
	}

	switch {
	case sample.Speed < c.thresholds.ParkingSpeed:
		if state.IsOnTrip && sample.Timestamp.Sub(state.StationarySince) > c.thresholds.StationaryThreshold {
			next.IsOnTrip = false
			return next, &models.ParkingEvent{
				UserID:    userID,
				Location:  sample.Location(),
				Timestamp: sample.Timestamp,
			}
		}
	case sample.Speed > c.thresholds.TripStartSpeed:
		next.IsOnTrip = true
		next.StationarySince = sample.Timestamp
	}

	// Полоса гистерезиса: решения нет
	return next, nil
}
