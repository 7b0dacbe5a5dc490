package service_test

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/parking_watchdog/internal/actiontoken"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/motion"
	"github.com/shenikar/parking_watchdog/internal/notifier"
	"github.com/shenikar/parking_watchdog/internal/service"
	"github.com/shenikar/parking_watchdog/internal/webhook"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu        sync.Mutex
	status    map[string]models.ResponseStatus
	lastCheck map[string]time.Time
	responded map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		status:    make(map[string]models.ResponseStatus),
		lastCheck: make(map[string]time.Time),
		responded: make(map[string]bool),
	}
}

func (s *memStore) GetStatus(_ context.Context, userID string) (models.ResponseStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[userID], nil
}

func (s *memStore) SetStatus(_ context.Context, userID string, status models.ResponseStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[userID] = status
	return nil
}

func (s *memStore) SetLastCheckIn(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCheck[userID] = at
	return nil
}

func (s *memStore) MarkNotificationResponded(_ context.Context, userID, notificationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "/" + notificationID
	if s.responded[key] {
		return false, nil
	}
	s.responded[key] = true
	return true, nil
}

func (s *memStore) GetUserStatus(_ context.Context, userID string) (*models.UserStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	us := &models.UserStatus{UserID: userID, Status: s.status[userID]}
	if at, ok := s.lastCheck[userID]; ok {
		us.LastCheckIn = &at
	}
	return us, nil
}

type memDirectory struct {
	families map[string][]models.FamilyMember
}

func (d *memDirectory) FamilyOf(_ context.Context, userID string) (string, error) {
	for id, members := range d.families {
		for _, m := range members {
			if m.ID == userID {
				return id, nil
			}
		}
	}
	return "", service.ErrNoFamily
}

func (d *memDirectory) Members(_ context.Context, familyID string) ([]models.FamilyMember, error) {
	return d.families[familyID], nil
}

type memHistory struct {
	mu       sync.Mutex
	requests map[string]*models.CheckInRequest
}

func (h *memHistory) Open(_ context.Context, req *models.CheckInRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := *req
	h.requests[req.NotificationID] = &r
	return nil
}

func (h *memHistory) Close(_ context.Context, notificationID string, state models.RequestState) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.requests[notificationID]; ok {
		r.State = state
	}
	return nil
}

func (h *memHistory) ListAwaiting(context.Context) ([]*models.CheckInRequest, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*models.CheckInRequest
	for _, r := range h.requests {
		if r.State == models.StateAwaitingResponse {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []webhook.NotificationEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e webhook.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) ofKind(kind webhook.EventKind) []webhook.NotificationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []webhook.NotificationEvent
	for _, e := range p.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecipientID < out[j].RecipientID })
	return out
}

// manualScheduler запоминает таймеры; тест сам решает, когда дедлайн истек
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu   sync.Mutex
	f    func()
	done bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) service.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll запускает все еще взведенные таймеры
func (s *manualScheduler) fireAll() {
	s.mu.Lock()
	timers := append([]*manualTimer(nil), s.timers...)
	s.mu.Unlock()
	for _, t := range timers {
		t.mu.Lock()
		pending := !t.done
		t.done = true
		t.mu.Unlock()
		if pending {
			t.f()
		}
	}
}

type world struct {
	watchdog  service.WatchdogService
	store     *memStore
	publisher *recordingPublisher
	scheduler *manualScheduler
	tokens    *actiontoken.Issuer
}

func newWorld(t *testing.T) *world {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		ParkingSpeedKmh:       5,
		TripStartSpeedKmh:     10,
		StationaryThreshold:   time.Minute,
		ConfirmationWindow:    5 * time.Minute,
		TimeoutHandlerTimeout: time.Second,
		BroadcastConcurrency:  2,
	}

	store := newMemStore()
	directory := &memDirectory{families: map[string][]models.FamilyMember{
		"F": {
			{ID: "A", Name: "Anna", Role: "parent"},
			{ID: "B", Name: "Boris", Role: "parent", Email: "boris@example.com"},
			{ID: "C", Name: "Clara", Role: "child"},
		},
	}}
	history := &memHistory{requests: make(map[string]*models.CheckInRequest)}
	publisher := &recordingPublisher{}
	scheduler := &manualScheduler{}
	tokens := actiontoken.NewIssuer("scenario-secret", time.Hour)

	escalation := notifier.New(publisher, directory, tokens, logger, cfg)
	tracker := motion.NewTracker(motion.NewClassifier(motion.ThresholdsFromConfig(cfg)))
	coordinator := service.NewCoordinator(store, directory, escalation, history, scheduler, tracker, logger, cfg)

	return &world{
		watchdog:  service.NewWatchdogService(tracker, coordinator, store, directory, logger),
		store:     store,
		publisher: publisher,
		scheduler: scheduler,
		tokens:    tokens,
	}
}

var driveStart = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

// drive подает показания с шагом 20 секунд и возвращает событие парковки, если оно было
func (w *world) drive(t *testing.T, userID string, speedsKmh ...float64) *models.ParkingEvent {
	t.Helper()
	start := driveStart
	var parked *models.ParkingEvent
	for i, kmh := range speedsKmh {
		sample := models.NewLocationSample(start.Add(time.Duration(i)*20*time.Second), 52.52, 13.405, kmh/models.MpsToKmh)
		event, err := w.watchdog.OnLocationSample(context.Background(), userID, sample)
		require.NoError(t, err)
		if event != nil {
			require.Nil(t, parked, "parking must be reported once per stop")
			parked = event
		}
	}
	return parked
}

func TestScenario_NoResponseAlertsFamily(t *testing.T) {
	w := newWorld(t)

	parked := w.drive(t, "A", 40, 35, 3, 2, 1, 0, 0, 0)
	require.NotNil(t, parked)

	prompts := w.publisher.ofKind(webhook.KindCheckInPrompt)
	require.Len(t, prompts, 1)
	assert.Equal(t, "A", prompts[0].RecipientID)

	status, err := w.watchdog.GetUserStatus(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status)

	// Пять минут без ответа
	w.scheduler.fireAll()

	alerts := w.publisher.ofKind(webhook.KindFamilyAlert)
	require.Len(t, alerts, 2)
	assert.Equal(t, "B", alerts[0].RecipientID)
	assert.Equal(t, "boris@example.com", alerts[0].RecipientEmail)
	assert.Equal(t, "C", alerts[1].RecipientID)
	for _, a := range alerts {
		assert.Equal(t, "A", a.SubjectID)
		assert.Equal(t, "Anna", a.SubjectName)
		assert.Equal(t, parked.Location.Latitude, a.Latitude)
		assert.Equal(t, parked.Location.Longitude, a.Longitude)
	}

	status, err = w.watchdog.GetUserStatus(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAlert, status.Status)

	family, err := w.watchdog.GetFamilyStatus(context.Background(), "F")
	require.NoError(t, err)
	require.Len(t, family, 3)
	assert.Equal(t, models.StatusAlert, family[0].ResponseStatus)
	assert.Empty(t, family[1].ResponseStatus)

	// Ответ после тревоги уже ничего не меняет
	applied, err := w.watchdog.OnUserResponse(context.Background(), "A", prompts[0].NotificationID, true)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Len(t, w.publisher.ofKind(webhook.KindFamilyAlert), 2)
}

func TestScenario_AlertCarriesLocationAfterParking(t *testing.T) {
	w := newWorld(t)

	parked := w.drive(t, "A", 40, 35, 3, 2, 1, 0, 0, 0)
	require.NotNil(t, parked)

	// Пока окно открыто, A уходит от машины пешком
	walked := models.NewLocationSample(driveStart.Add(4*time.Minute), 52.5231, 13.4112, 1/models.MpsToKmh)
	event, err := w.watchdog.OnLocationSample(context.Background(), "A", walked)
	require.NoError(t, err)
	require.Nil(t, event)

	w.scheduler.fireAll()

	alerts := w.publisher.ofKind(webhook.KindFamilyAlert)
	require.Len(t, alerts, 2)
	for _, a := range alerts {
		assert.Equal(t, 52.5231, a.Latitude)
		assert.Equal(t, 13.4112, a.Longitude)
		assert.NotEqual(t, parked.Location.Latitude, a.Latitude)
	}
}

func TestScenario_ConfirmViaActionToken(t *testing.T) {
	w := newWorld(t)

	require.NotNil(t, w.drive(t, "A", 40, 35, 3, 2, 1, 0, 0, 0))

	prompts := w.publisher.ofKind(webhook.KindCheckInPrompt)
	require.Len(t, prompts, 1)
	claims, err := w.tokens.Parse(prompts[0].Actions[0].Token)
	require.NoError(t, err)

	applied, err := w.watchdog.OnUserResponse(context.Background(), claims.Subject, claims.NotificationID, claims.Action.Accepted())
	require.NoError(t, err)
	assert.True(t, applied)

	// Таймер остановлен, а даже если сработает - статус уже OK
	w.scheduler.fireAll()

	assert.Empty(t, w.publisher.ofKind(webhook.KindFamilyAlert))
	assert.Len(t, w.publisher.ofKind(webhook.KindPromptCancel), 1)

	status, err := w.watchdog.GetUserStatus(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOK, status.Status)
	assert.NotNil(t, status.LastCheckIn)
}

func TestScenario_TrafficLightDoesNotPrompt(t *testing.T) {
	w := newWorld(t)

	// Короткая остановка на светофоре, затем снова в пути
	assert.Nil(t, w.drive(t, "A", 40, 40, 2, 1, 30, 50))
	assert.Empty(t, w.publisher.ofKind(webhook.KindCheckInPrompt))
}

func TestScenario_DormantWithoutIdentity(t *testing.T) {
	w := newWorld(t)

	_, err := w.watchdog.OnLocationSample(context.Background(), "", models.NewLocationSample(time.Now(), 0, 0, 0))

	assert.ErrorIs(t, err, service.ErrNoIdentity)
}
