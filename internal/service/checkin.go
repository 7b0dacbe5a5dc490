package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultTimeoutHandlerTimeout = 10 * time.Second

// Coordinator ведет машину состояний подтверждения для каждого пользователя:
// NONE -> AWAITING_RESPONSE -> CONFIRMED | ALERTED.
//
// Все операции одного пользователя выполняются под его мьютексом, поэтому гонка
// ответа и таймаута разрешается тем, кто первым увидит AWAITING_RESPONSE.
// Сохраненный статус остается источником истины для таймаута: таймеры не переживают рестарт.
type Coordinator struct {
	store     StatusStore
	directory FamilyDirectory
	notifier  EscalationNotifier
	history   CheckInHistory
	scheduler Scheduler
	locations LocationSource
	logger    *logrus.Logger
	cfg       *config.Config

	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	users map[string]*userCheckIn
}

type userCheckIn struct {
	mu    sync.Mutex
	req   *models.CheckInRequest
	timer Timer

	// pendingPersisted - PENDING текущего цикла дошел до хранилища.
	// Иначе там может лежать статус прошлого цикла.
	pendingPersisted bool
}

func NewCoordinator(
	store StatusStore,
	directory FamilyDirectory,
	notifier EscalationNotifier,
	history CheckInHistory,
	scheduler Scheduler,
	locations LocationSource,
	logger *logrus.Logger,
	cfg *config.Config,
) *Coordinator {
	return &Coordinator{
		store:     store,
		directory: directory,
		notifier:  notifier,
		history:   history,
		scheduler: scheduler,
		locations: locations,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
		users:     make(map[string]*userCheckIn),
	}
}

// OnParkingEvent открывает запрос подтверждения. Если запрос уже ожидает ответа,
// событие игнорируется: дедлайн и notificationID остаются прежними.
func (c *Coordinator) OnParkingEvent(ctx context.Context, event models.ParkingEvent) (models.CheckInRequest, bool) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "OnParkingEvent",
		"user_id": event.UserID,
	})

	uc := c.entry(event.UserID)
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.req != nil && uc.req.State == models.StateAwaitingResponse {
		log.WithField("notification_id", uc.req.NotificationID).Info("Check-in request already open, ignoring parking event")
		return *uc.req, false
	}

	now := c.now()
	req := &models.CheckInRequest{
		UserID:         event.UserID,
		NotificationID: c.newID(),
		OpenedAt:       now,
		DeadlineAt:     now.Add(c.cfg.ConfirmationWindow),
		State:          models.StateAwaitingResponse,
		Location:       event.Location,
	}
	uc.req = req
	log = log.WithField("notification_id", req.NotificationID)

	uc.pendingPersisted = true
	if err := c.store.SetStatus(ctx, req.UserID, models.StatusPending); err != nil {
		uc.pendingPersisted = false
		log.WithError(err).Error("Failed to persist PENDING status, deadline will be decided in memory")
	}
	if err := c.history.Open(ctx, req); err != nil {
		log.WithError(err).Error("Failed to record check-in request")
	}

	uc.timer = c.arm(req.UserID, req.NotificationID, c.cfg.ConfirmationWindow)

	if err := c.notifier.PromptUser(ctx, req.UserID, req.NotificationID); err != nil {
		// Таймер уже взведен: без ответа семья все равно получит тревогу
		log.WithError(err).Error("Failed to prompt user for check-in")
	}

	log.WithField("deadline_at", req.DeadlineAt).Info("Check-in request opened")
	return *req, true
}

// OnUserResponse применяет ответ пользователя на открытый запрос.
// Устаревшие и повторные ответы игнорируются, ответ после таймаута тревогу не отменяет.
func (c *Coordinator) OnUserResponse(ctx context.Context, userID, notificationID string, accepted bool) bool {
	log := c.logger.WithFields(logrus.Fields{
		"service":         "checkin",
		"method":          "OnUserResponse",
		"user_id":         userID,
		"notification_id": notificationID,
		"accepted":        accepted,
	})

	uc := c.lookup(userID)
	if uc == nil {
		log.Debug("No check-in request for user, ignoring response")
		return false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	req := uc.req
	if req == nil || req.NotificationID != notificationID {
		log.Debug("Response does not match the open request, ignoring")
		return false
	}
	if req.State != models.StateAwaitingResponse {
		log.WithField("state", req.State).Debug("Check-in request already closed, ignoring response")
		return false
	}

	first, err := c.store.MarkNotificationResponded(ctx, userID, notificationID)
	if err != nil {
		log.WithError(err).Error("Failed to mark notification as responded")
	} else if !first {
		log.Debug("Duplicate action delivery, ignoring")
		return false
	}

	c.stopTimer(uc)

	status, state := models.StatusOK, models.StateConfirmed
	if !accepted {
		status, state = models.StatusAlert, models.StateAlerted
	}
	req.State = state

	if err := c.store.SetStatus(ctx, userID, status); err != nil {
		log.WithError(err).Error("Failed to persist response status")
	}
	if err := c.store.SetLastCheckIn(ctx, userID, c.now()); err != nil {
		log.WithError(err).Error("Failed to persist last check-in")
	}
	c.closeRequest(ctx, log, req)

	if !accepted {
		log.Warn("User declined check-in, alerting family")
		c.escalate(ctx, log, req)
		return true
	}

	log.Info("User confirmed check-in")
	return true
}

// OnDeadlineTimeout срабатывает по истечении окна подтверждения. Тревога отправляется,
// только если сохраненный статус все еще PENDING (или неизвестен). Если PENDING этого
// цикла записать не удалось, сохраненный OK/ALERT относится к прошлому циклу и не учитывается.
func (c *Coordinator) OnDeadlineTimeout(ctx context.Context, userID, notificationID string) bool {
	log := c.logger.WithFields(logrus.Fields{
		"service":         "checkin",
		"method":          "OnDeadlineTimeout",
		"user_id":         userID,
		"notification_id": notificationID,
	})

	uc := c.lookup(userID)
	if uc == nil {
		log.Debug("No check-in request for user, ignoring timeout")
		return false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	req := uc.req
	if req == nil || req.NotificationID != notificationID {
		log.Debug("Timeout for a stale notification, ignoring")
		return false
	}
	if req.State != models.StateAwaitingResponse {
		log.WithField("state", req.State).Debug("Check-in request already closed, ignoring timeout")
		return false
	}
	uc.timer = nil

	status, err := c.store.GetStatus(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to read persisted status, treating as unknown")
		status = ""
	}

	if !uc.pendingPersisted && (status == models.StatusOK || status == models.StatusAlert) {
		log.WithField("persisted_status", status).Warn("Persisted status belongs to a previous cycle, ignoring it")
		status = ""
	}

	switch status {
	case models.StatusOK:
		// Ответ записан в обход этого процесса
		req.State = models.StateConfirmed
		c.closeRequest(ctx, log, req)
		log.Info("Check-in already confirmed, skipping alert")
		return false
	case models.StatusAlert:
		req.State = models.StateAlerted
		c.closeRequest(ctx, log, req)
		log.Info("User already in ALERT, skipping duplicate alert")
		return false
	}

	req.State = models.StateAlerted
	if err := c.store.SetStatus(ctx, userID, models.StatusAlert); err != nil {
		log.WithError(err).Error("Failed to persist ALERT status")
	}
	c.closeRequest(ctx, log, req)

	log.Warn("Check-in deadline missed, alerting family")
	c.escalate(ctx, log, req)
	return true
}

// Request возвращает копию последнего запроса пользователя
func (c *Coordinator) Request(userID string) (models.CheckInRequest, bool) {
	uc := c.lookup(userID)
	if uc == nil {
		return models.CheckInRequest{}, false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.req == nil {
		return models.CheckInRequest{}, false
	}
	return *uc.req, true
}

// Recover восстанавливает ожидающие запросы из журнала после рестарта и заново взводит таймеры.
// Просроченные запросы обрабатываются сразу.
func (c *Coordinator) Recover(ctx context.Context) (int, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "Recover",
	})

	pending, err := c.history.ListAwaiting(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list awaiting check-in requests")
		return 0, fmt.Errorf("service: could not recover check-in requests: %w", err)
	}

	now := c.now()
	restored := 0
	for _, r := range pending {
		uc := c.entry(r.UserID)
		uc.mu.Lock()
		if uc.req != nil && uc.req.State == models.StateAwaitingResponse {
			uc.mu.Unlock()
			dupLog := log.WithFields(logrus.Fields{
				"user_id":         r.UserID,
				"notification_id": r.NotificationID,
			})
			// Журнал отдает запросы от новых к старым, старший дубль закрываем
			if err := c.history.Close(ctx, r.NotificationID, models.StateSuperseded); err != nil {
				dupLog.WithError(err).Error("Failed to close superseded check-in request")
			} else {
				dupLog.Warn("Closed older awaiting request superseded by a newer one")
			}
			continue
		}

		req := *r
		req.State = models.StateAwaitingResponse
		uc.req = &req
		uc.pendingPersisted = true
		uc.timer = c.arm(req.UserID, req.NotificationID, max(req.DeadlineAt.Sub(now), 0))
		uc.mu.Unlock()
		restored++
	}

	log.WithField("count", restored).Info("Check-in requests recovered")
	return restored, nil
}

func (c *Coordinator) arm(userID, notificationID string, d time.Duration) Timer {
	return c.scheduler.AfterFunc(d, func() {
		timeout := c.cfg.TimeoutHandlerTimeout
		if timeout <= 0 {
			timeout = defaultTimeoutHandlerTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		c.OnDeadlineTimeout(ctx, userID, notificationID)
	})
}

func (c *Coordinator) stopTimer(uc *userCheckIn) {
	if uc.timer != nil {
		uc.timer.Stop()
		uc.timer = nil
	}
}

func (c *Coordinator) closeRequest(ctx context.Context, log *logrus.Entry, req *models.CheckInRequest) {
	if err := c.history.Close(ctx, req.NotificationID, req.State); err != nil {
		log.WithError(err).Error("Failed to close check-in request in history")
	}
	if err := c.notifier.CancelPrompt(ctx, req.UserID, req.NotificationID); err != nil {
		log.WithError(err).Warn("Failed to cancel check-in prompt")
	}
}

func (c *Coordinator) escalate(ctx context.Context, log *logrus.Entry, req *models.CheckInRequest) {
	familyID, err := c.directory.FamilyOf(ctx, req.UserID)
	if errors.Is(err, ErrNoFamily) {
		log.Warn("User has no family, nobody to alert")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to resolve user's family")
		return
	}

	location := req.Location
	if c.locations != nil {
		if last, ok := c.locations.LastKnownLocation(req.UserID); ok {
			location = last
		}
	}

	if err := c.notifier.BroadcastAlert(ctx, familyID, req.UserID, location); err != nil {
		log.WithError(err).WithField("family_id", familyID).Error("Family alert was not delivered to every member")
		return
	}
	log.WithField("family_id", familyID).Info("Family alerted")
}

func (c *Coordinator) entry(userID string) *userCheckIn {
	c.mu.Lock()
	defer c.mu.Unlock()

	uc, ok := c.users[userID]
	if !ok {
		uc = &userCheckIn{}
		c.users[userID] = uc
	}
	return uc
}

func (c *Coordinator) lookup(userID string) *userCheckIn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users[userID]
}
