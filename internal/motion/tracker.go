package motion

import (
	"sync"

	"github.com/shenikar/parking_watchdog/internal/models"
)

// Tracker хранит MotionState каждого пользователя на время жизни процесса.
// Показания одного пользователя обрабатываются последовательно, разные пользователи не блокируют друг друга.
type Tracker struct {
	classifier *Classifier

	mu     sync.Mutex
	states map[string]*userMotion
}

type userMotion struct {
	mu    sync.Mutex
	state models.MotionState
}

func NewTracker(classifier *Classifier) *Tracker {
	return &Tracker{
		classifier: classifier,
		states:     make(map[string]*userMotion),
	}
}

// Observe классифицирует показание и возвращает событие парковки, если оно произошло
func (t *Tracker) Observe(userID string, sample models.LocationSample) *models.ParkingEvent {
	um := t.entry(userID)

	um.mu.Lock()
	defer um.mu.Unlock()

	next, event := t.classifier.Classify(userID, sample, um.state)
	um.state = next
	return event
}

// State возвращает копию текущего состояния пользователя
func (t *Tracker) State(userID string) (models.MotionState, bool) {
	t.mu.Lock()
	um, ok := t.states[userID]
	t.mu.Unlock()
	if !ok {
		return models.MotionState{}, false
	}

	um.mu.Lock()
	defer um.mu.Unlock()
	return um.state, true
}

// LastKnownLocation возвращает координаты последнего принятого показания
func (t *Tracker) LastKnownLocation(userID string) (models.Location, bool) {
	state, ok := t.State(userID)
	if !ok || state.LastSample == nil {
		return models.Location{}, false
	}
	return state.LastSample.Location(), true
}

// Reset забывает историю движения пользователя
func (t *Tracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, userID)
}

func (t *Tracker) entry(userID string) *userMotion {
	t.mu.Lock()
	defer t.mu.Unlock()

	um, ok := t.states[userID]
	if !ok {
		um = &userMotion{}
		t.states[userID] = um
	}
	return um
}
