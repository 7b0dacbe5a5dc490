package webhook

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/sirupsen/logrus"
)

// sesAPI - часть клиента SES, которая нужна каналу
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailChannel дублирует семейные тревоги письмом через Amazon SES
type EmailChannel struct {
	client      sesAPI
	fromAddress string
	logger      *logrus.Logger
}

// NewEmailChannel создает канал SES. Если SES_FROM_EMAIL не задан, возвращает nil.
func NewEmailChannel(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*EmailChannel, error) {
	if cfg.SESFromEmail == "" {
		logger.Info("Email channel disabled: SES_FROM_EMAIL not configured")
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	fromAddress := cfg.SESFromEmail
	if cfg.SESFromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", cfg.SESFromName, cfg.SESFromEmail)
	}

	logger.WithFields(logrus.Fields{
		"from":   cfg.SESFromEmail,
		"region": cfg.AWSRegion,
	}).Info("Email channel enabled")

	return newEmailChannel(sesv2.NewFromConfig(awsCfg), fromAddress, logger), nil
}

func newEmailChannel(client sesAPI, fromAddress string, logger *logrus.Logger) *EmailChannel {
	return &EmailChannel{
		client:      client,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

func (c *EmailChannel) Name() string {
	return "email"
}

// Accepts - письмом уходят только семейные тревоги получателям с адресом
func (c *EmailChannel) Accepts(event NotificationEvent) bool {
	return event.Kind == KindFamilyAlert && event.RecipientEmail != ""
}

func (c *EmailChannel) Deliver(ctx context.Context, event NotificationEvent, _ string) error {
	text := fmt.Sprintf("%s\n\nLast known location: https://maps.google.com/?q=%.6f,%.6f\n",
		event.Body, event.Latitude, event.Longitude)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{event.RecipientEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(event.Title),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(text),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := c.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", event.RecipientEmail, err)
	}

	c.logger.WithFields(logrus.Fields{
		"recipient_id": event.RecipientID,
		"message_id":   aws.ToString(result.MessageId),
	}).Info("Alert email sent")
	return nil
}
