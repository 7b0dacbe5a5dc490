package models

import (
	"time"
)

// MpsToKmh - коэффициент перевода скорости устройства (м/с) в км/ч
const MpsToKmh = 3.6

// Location - географическая точка
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationSample - одно показание провайдера геолокации. Скорость хранится в км/ч.
type LocationSample struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Speed     float64   `json:"speed"`
}

// NewLocationSample создает показание, переводя сырую скорость устройства в км/ч
func NewLocationSample(ts time.Time, lat, lon, speedMps float64) LocationSample {
	return LocationSample{
		Timestamp: ts,
		Latitude:  lat,
		Longitude: lon,
		Speed:     speedMps * MpsToKmh,
	}
}

// Location возвращает координаты показания
func (s LocationSample) Location() Location {
	return Location{Latitude: s.Latitude, Longitude: s.Longitude}
}

// MotionState - транзитное состояние классификатора движения для одного пользователя
type MotionState struct {
	IsOnTrip        bool
	StationarySince time.Time
	LastSample      *LocationSample
}

// ParkingEvent - обнаруженный переход от движения к устойчивой остановке
type ParkingEvent struct {
	UserID    string    `json:"user_id"`
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}
