package service

import (
	"context"
	"fmt"

	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/motion"
	"github.com/sirupsen/logrus"
)

// WatchdogService определяет точки входа сторожа: поток геолокации, ответ пользователя и таймаут
type WatchdogService interface {
	OnLocationSample(ctx context.Context, userID string, sample models.LocationSample) (*models.ParkingEvent, error)
	OnUserResponse(ctx context.Context, userID, notificationID string, accepted bool) (bool, error)
	OnDeadlineTimeout(ctx context.Context, userID, notificationID string) (bool, error)
	GetUserStatus(ctx context.Context, userID string) (*models.UserStatus, error)
	GetFamilyStatus(ctx context.Context, familyID string) ([]models.FamilyMember, error)
}

type watchdogService struct {
	tracker     *motion.Tracker
	coordinator *Coordinator
	store       StatusStore
	directory   FamilyDirectory
	logger      *logrus.Logger
}

func NewWatchdogService(
	tracker *motion.Tracker,
	coordinator *Coordinator,
	store StatusStore,
	directory FamilyDirectory,
	logger *logrus.Logger,
) WatchdogService {
	return &watchdogService{
		tracker:     tracker,
		coordinator: coordinator,
		store:       store,
		directory:   directory,
		logger:      logger,
	}
}

// OnLocationSample прогоняет показание через классификатор и при парковке открывает запрос
func (s *watchdogService) OnLocationSample(ctx context.Context, userID string, sample models.LocationSample) (*models.ParkingEvent, error) {
	if userID == "" {
		s.logger.WithField("method", "OnLocationSample").Debug("No user identity, watchdog is dormant")
		return nil, ErrNoIdentity
	}

	event := s.tracker.Observe(userID, sample)
	if event == nil {
		return nil, nil
	}

	s.logger.WithFields(logrus.Fields{
		"service":   "watchdog",
		"method":    "OnLocationSample",
		"user_id":   userID,
		"latitude":  event.Location.Latitude,
		"longitude": event.Location.Longitude,
	}).Info("Parking detected")

	s.coordinator.OnParkingEvent(ctx, *event)
	return event, nil
}

// OnUserResponse принимает подтверждение или отказ пользователя
func (s *watchdogService) OnUserResponse(ctx context.Context, userID, notificationID string, accepted bool) (bool, error) {
	if userID == "" {
		return false, ErrNoIdentity
	}
	return s.coordinator.OnUserResponse(ctx, userID, notificationID, accepted), nil
}

// OnDeadlineTimeout принимает внешний сигнал об истечении дедлайна
func (s *watchdogService) OnDeadlineTimeout(ctx context.Context, userID, notificationID string) (bool, error) {
	if userID == "" {
		return false, ErrNoIdentity
	}
	return s.coordinator.OnDeadlineTimeout(ctx, userID, notificationID), nil
}

// GetUserStatus возвращает сохраненный статус пользователя
func (s *watchdogService) GetUserStatus(ctx context.Context, userID string) (*models.UserStatus, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "watchdog",
		"method":  "GetUserStatus",
		"user_id": userID,
	})

	status, err := s.store.GetUserStatus(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to read user status")
		return nil, fmt.Errorf("service: could not get user status: %w", err)
	}
	return status, nil
}

// GetFamilyStatus возвращает участников семьи с их текущими статусами
func (s *watchdogService) GetFamilyStatus(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "watchdog",
		"method":    "GetFamilyStatus",
		"family_id": familyID,
	})

	members, err := s.directory.Members(ctx, familyID)
	if err != nil {
		log.WithError(err).Error("Failed to list family members")
		return nil, fmt.Errorf("service: could not list family members: %w", err)
	}

	// Копия: наружу не отдаем срез справочника
	result := make([]models.FamilyMember, len(members))
	for i, m := range members {
		status, err := s.store.GetStatus(ctx, m.ID)
		if err != nil {
			log.WithError(err).WithField("member_id", m.ID).Warn("Failed to read member status")
		}
		m.ResponseStatus = status
		result[i] = m
	}

	log.WithField("count", len(result)).Info("Family status fetched")
	return result, nil
}
