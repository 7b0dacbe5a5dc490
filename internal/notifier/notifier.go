package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/parking_watchdog/internal/actiontoken"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/service"
	"github.com/shenikar/parking_watchdog/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	promptTitle = "Did you arrive safely?"
	promptBody  = "You parked a few minutes ago. Let your family know you are OK."

	labelConfirm = "All clear"
	labelDecline = "Need help"
)

// Notifier превращает решения координатора в события очереди уведомлений
type Notifier struct {
	publisher webhook.Publisher
	directory service.FamilyDirectory
	tokens    *actiontoken.Issuer
	logger    *logrus.Logger
	cfg       *config.Config

	now   func() time.Time
	newID func() string
}

var _ service.EscalationNotifier = (*Notifier)(nil)

func New(
	publisher webhook.Publisher,
	directory service.FamilyDirectory,
	tokens *actiontoken.Issuer,
	logger *logrus.Logger,
	cfg *config.Config,
) *Notifier {
	return &Notifier{
		publisher: publisher,
		directory: directory,
		tokens:    tokens,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// PromptUser отправляет пользователю запрос с двумя кнопками: подтвердить и отклонить
func (n *Notifier) PromptUser(ctx context.Context, userID, notificationID string) error {
	confirm, err := n.tokens.Issue(userID, notificationID, actiontoken.ActionConfirm)
	if err != nil {
		return fmt.Errorf("failed to issue confirm token: %w", err)
	}
	decline, err := n.tokens.Issue(userID, notificationID, actiontoken.ActionDecline)
	if err != nil {
		return fmt.Errorf("failed to issue decline token: %w", err)
	}

	event := webhook.NotificationEvent{
		Kind:           webhook.KindCheckInPrompt,
		NotificationID: notificationID,
		RecipientID:    userID,
		SubjectID:      userID,
		Title:          promptTitle,
		Body:           promptBody,
		Actions: []webhook.Action{
			{Name: string(actiontoken.ActionConfirm), Label: labelConfirm, Token: confirm},
			{Name: string(actiontoken.ActionDecline), Label: labelDecline, Token: decline},
		},
		Timestamp: n.now(),
	}

	if err := n.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish check-in prompt: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"user_id":         userID,
		"notification_id": notificationID,
	}).Info("Check-in prompt queued")
	return nil
}

// CancelPrompt просит push-шлюз убрать запрос с устройства
func (n *Notifier) CancelPrompt(ctx context.Context, userID, notificationID string) error {
	event := webhook.NotificationEvent{
		Kind:           webhook.KindPromptCancel,
		NotificationID: notificationID,
		RecipientID:    userID,
		SubjectID:      userID,
		Timestamp:      n.now(),
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish prompt cancellation: %w", err)
	}
	return nil
}

// BroadcastAlert рассылает тревогу всем членам семьи, кроме самого пользователя.
// Ошибка доставки одному получателю не мешает остальным; ошибки объединяются.
func (n *Notifier) BroadcastAlert(ctx context.Context, familyID, excludingUserID string, location models.Location) error {
	log := n.logger.WithFields(logrus.Fields{
		"family_id": familyID,
		"user_id":   excludingUserID,
	})

	members, err := n.directory.Members(ctx, familyID)
	if err != nil {
		return fmt.Errorf("failed to list family members: %w", err)
	}

	subjectName := excludingUserID
	seen := models.NewIDSet(excludingUserID)
	recipients := make([]models.FamilyMember, 0, len(members))
	for _, m := range members {
		if m.ID == excludingUserID && m.Name != "" {
			subjectName = m.Name
		}
		if seen.Contains(m.ID) {
			continue
		}
		seen.Add(m.ID)
		recipients = append(recipients, m)
	}

	if len(recipients) == 0 {
		log.Info("No family members to alert")
		return nil
	}

	alertID := n.newID()
	now := n.now()

	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(n.cfg.BroadcastConcurrency, 1))

	for _, member := range recipients {
		g.Go(func() error {
			event := webhook.NotificationEvent{
				Kind:           webhook.KindFamilyAlert,
				NotificationID: alertID,
				RecipientID:    member.ID,
				RecipientEmail: member.Email,
				SubjectID:      excludingUserID,
				SubjectName:    subjectName,
				Title:          fmt.Sprintf("%s may need help", subjectName),
				Body:           fmt.Sprintf("%s parked and did not confirm they are OK.", subjectName),
				Latitude:       location.Latitude,
				Longitude:      location.Longitude,
				Timestamp:      now,
			}
			if err := n.publisher.Publish(gctx, event); err != nil {
				log.WithError(err).WithField("recipient_id", member.ID).Error("Failed to queue family alert")
				mu.Lock()
				errs = append(errs, fmt.Errorf("recipient %s: %w", member.ID, err))
				mu.Unlock()
			}
			// Ошибку не возвращаем, чтобы errgroup не отменил остальных получателей
			return nil
		})
	}
	_ = g.Wait()

	log.WithFields(logrus.Fields{
		"alert_id":   alertID,
		"recipients": len(recipients),
		"failed":     len(errs),
	}).Warn("Family alert broadcast")

	return errors.Join(errs...)
}
