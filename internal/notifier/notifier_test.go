package notifier

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/parking_watchdog/internal/actiontoken"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/service/mocks"
	"github.com/shenikar/parking_watchdog/internal/webhook"
	webhook_mocks "github.com/shenikar/parking_watchdog/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestNotifier(t *testing.T) (*Notifier, *webhook_mocks.MockPublisher, *mocks.MockFamilyDirectory, *actiontoken.Issuer) {
	ctrl := gomock.NewController(t)
	publisherMock := webhook_mocks.NewMockPublisher(ctrl)
	directoryMock := mocks.NewMockFamilyDirectory(ctrl)
	tokens := actiontoken.NewIssuer("secret", time.Hour)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	n := New(publisherMock, directoryMock, tokens, logger, &config.Config{BroadcastConcurrency: 4})
	n.now = func() time.Time { return testNow }
	n.newID = func() string { return "alert-1" }
	return n, publisherMock, directoryMock, tokens
}

func TestPromptUser_PublishesSignedActions(t *testing.T) {
	n, publisherMock, _, tokens := newTestNotifier(t)
	ctx := context.Background()

	var got webhook.NotificationEvent
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.NotificationEvent) error {
			got = e
			return nil
		}).
		Times(1)

	err := n.PromptUser(ctx, "user-a", "n-1")

	require.NoError(t, err)
	assert.Equal(t, webhook.KindCheckInPrompt, got.Kind)
	assert.Equal(t, "user-a", got.RecipientID)
	assert.Equal(t, "n-1", got.NotificationID)
	require.Len(t, got.Actions, 2)

	confirm, err := tokens.Parse(got.Actions[0].Token)
	require.NoError(t, err)
	assert.Equal(t, actiontoken.ActionConfirm, confirm.Action)
	assert.Equal(t, "n-1", confirm.NotificationID)

	decline, err := tokens.Parse(got.Actions[1].Token)
	require.NoError(t, err)
	assert.Equal(t, actiontoken.ActionDecline, decline.Action)
	assert.Equal(t, "user-a", decline.Subject)
}

func TestPromptUser_PublishError(t *testing.T) {
	n, publisherMock, _, _ := newTestNotifier(t)

	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	err := n.PromptUser(context.Background(), "user-a", "n-1")

	assert.ErrorContains(t, err, "redis down")
}

func TestCancelPrompt(t *testing.T) {
	n, publisherMock, _, _ := newTestNotifier(t)

	publisherMock.EXPECT().
		Publish(gomock.Any(), webhook.NotificationEvent{
			Kind:           webhook.KindPromptCancel,
			NotificationID: "n-1",
			RecipientID:    "user-a",
			SubjectID:      "user-a",
			Timestamp:      testNow,
		}).
		Return(nil)

	require.NoError(t, n.CancelPrompt(context.Background(), "user-a", "n-1"))
}

// recordPublishes собирает события, опубликованные из нескольких горутин
func recordPublishes(publisherMock *webhook_mocks.MockPublisher, fail map[string]error) func() []webhook.NotificationEvent {
	var (
		mu  sync.Mutex
		got []webhook.NotificationEvent
	)
	publisherMock.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.NotificationEvent) error {
			mu.Lock()
			got = append(got, e)
			mu.Unlock()
			return fail[e.RecipientID]
		}).
		AnyTimes()

	return func() []webhook.NotificationEvent {
		mu.Lock()
		defer mu.Unlock()
		out := append([]webhook.NotificationEvent(nil), got...)
		sort.Slice(out, func(i, j int) bool { return out[i].RecipientID < out[j].RecipientID })
		return out
	}
}

func TestBroadcastAlert_ExcludesSubject(t *testing.T) {
	n, publisherMock, directoryMock, _ := newTestNotifier(t)
	ctx := context.Background()
	loc := models.Location{Latitude: 52.52, Longitude: 13.405}

	directoryMock.EXPECT().
		Members(ctx, "family-1").
		Return([]models.FamilyMember{
			{ID: "a", Name: "Anna"},
			{ID: "b", Name: "Boris", Email: "b@example.com"},
			{ID: "c", Name: "Clara"},
		}, nil)
	events := recordPublishes(publisherMock, nil)

	err := n.BroadcastAlert(ctx, "family-1", "a", loc)

	require.NoError(t, err)
	got := events()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].RecipientID)
	assert.Equal(t, "b@example.com", got[0].RecipientEmail)
	assert.Equal(t, "c", got[1].RecipientID)
	for _, e := range got {
		assert.Equal(t, webhook.KindFamilyAlert, e.Kind)
		assert.Equal(t, "alert-1", e.NotificationID)
		assert.Equal(t, "a", e.SubjectID)
		assert.Equal(t, "Anna", e.SubjectName)
		assert.Equal(t, loc.Latitude, e.Latitude)
		assert.Equal(t, loc.Longitude, e.Longitude)
	}
}

func TestBroadcastAlert_OnlySubjectInFamily(t *testing.T) {
	n, _, directoryMock, _ := newTestNotifier(t)

	directoryMock.EXPECT().
		Members(gomock.Any(), "family-1").
		Return([]models.FamilyMember{{ID: "a"}}, nil)

	err := n.BroadcastAlert(context.Background(), "family-1", "a", models.Location{})

	assert.NoError(t, err)
}

func TestBroadcastAlert_DuplicateMembersAlertedOnce(t *testing.T) {
	n, publisherMock, directoryMock, _ := newTestNotifier(t)

	directoryMock.EXPECT().
		Members(gomock.Any(), "family-1").
		Return([]models.FamilyMember{{ID: "a"}, {ID: "b"}, {ID: "b"}}, nil)
	events := recordPublishes(publisherMock, nil)

	require.NoError(t, n.BroadcastAlert(context.Background(), "family-1", "a", models.Location{}))

	got := events()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].SubjectName)
}

func TestBroadcastAlert_BestEffort(t *testing.T) {
	n, publisherMock, directoryMock, _ := newTestNotifier(t)

	directoryMock.EXPECT().
		Members(gomock.Any(), "family-1").
		Return([]models.FamilyMember{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}, nil)
	events := recordPublishes(publisherMock, map[string]error{"c": errors.New("queue full")})

	err := n.BroadcastAlert(context.Background(), "family-1", "a", models.Location{})

	assert.ErrorContains(t, err, "recipient c")
	assert.Len(t, events(), 3)
}

func TestBroadcastAlert_DirectoryError(t *testing.T) {
	n, _, directoryMock, _ := newTestNotifier(t)

	directoryMock.EXPECT().
		Members(gomock.Any(), "family-1").
		Return(nil, errors.New("db down"))

	err := n.BroadcastAlert(context.Background(), "family-1", "a", models.Location{})

	assert.ErrorContains(t, err, "db down")
}
