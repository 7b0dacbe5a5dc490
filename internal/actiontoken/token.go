// Package actiontoken подписывает кнопки уведомления, чтобы ответ можно было
// связать с (userID, notificationID) и проверить без API-ключа.
package actiontoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "parking-watchdog"

// Action - действие кнопки уведомления
type Action string

const (
	ActionConfirm Action = "ACTION_CONFIRM"
	ActionDecline Action = "ACTION_DECLINE"
)

// Accepted сообщает, подтверждает ли действие безопасность
func (a Action) Accepted() bool {
	return a == ActionConfirm
}

func (a Action) valid() bool {
	return a == ActionConfirm || a == ActionDecline
}

var ErrInvalidToken = errors.New("invalid action token")

// Claims - содержимое токена действия
type Claims struct {
	jwt.RegisteredClaims
	NotificationID string `json:"nid"`
	Action         Action `json:"act"`
}

// Issuer выпускает и проверяет токены действий (HS256)
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue подписывает действие для конкретного запроса подтверждения
func (i *Issuer) Issue(userID, notificationID string, action Action) (string, error) {
	if !action.valid() {
		return "", fmt.Errorf("unknown action %q", action)
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		NotificationID: notificationID,
		Action:         action,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign action token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись, срок действия и состав токена
func (i *Issuer) Parse(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.NotificationID == "" || !claims.Action.valid() {
		return nil, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}
	return claims, nil
}
