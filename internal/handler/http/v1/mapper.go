package v1

import (
	"time"

	"github.com/shenikar/parking_watchdog/internal/models"
)

// DTOToLocationSample переводит показание в доменную модель: скорость м/с -> км/ч.
// Без метки времени показание считается снятым сейчас.
func DTOToLocationSample(dto LocationSampleRequest, now time.Time) models.LocationSample {
	ts := dto.Timestamp
	if ts.IsZero() {
		ts = now
	}
	return models.NewLocationSample(ts, dto.Latitude, dto.Longitude, *dto.SpeedMps)
}

// ModelToParkingEventResponse преобразует событие парковки (или его отсутствие) в DTO
func ModelToParkingEventResponse(event *models.ParkingEvent) ParkingEventResponse {
	if event == nil {
		return ParkingEventResponse{}
	}
	ts := event.Timestamp
	return ParkingEventResponse{
		Parked:    true,
		Latitude:  event.Location.Latitude,
		Longitude: event.Location.Longitude,
		Timestamp: &ts,
	}
}

func ModelToUserStatusResponse(model *models.UserStatus) UserStatusResponse {
	return UserStatusResponse{
		UserID:      model.UserID,
		Status:      string(model.Status),
		LastCheckIn: model.LastCheckIn,
	}
}

// ModelsToFamilyMemberResponses преобразует слайс моделей в слайс DTO; email наружу не отдается
func ModelsToFamilyMemberResponses(members []models.FamilyMember) []FamilyMemberResponse {
	responses := make([]FamilyMemberResponse, len(members))
	for i, m := range members {
		responses[i] = FamilyMemberResponse{
			ID:     m.ID,
			Name:   m.Name,
			Role:   m.Role,
			Status: string(m.ResponseStatus),
		}
	}
	return responses
}
