package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/service"
)

// CheckInRepository - журнал запросов подтверждения в PostgreSQL
type CheckInRepository struct {
	db *pgxpool.Pool
}

func NewCheckInRepository(db *pgxpool.Pool) service.CheckInHistory {
	return &CheckInRepository{
		db: db,
	}
}

// Open записывает новый запрос в состоянии AWAITING_RESPONSE
func (r *CheckInRepository) Open(ctx context.Context, req *models.CheckInRequest) error {
	query := `
		INSERT INTO checkin_requests (notification_id, user_id, latitude, longitude, state, opened_at, deadline_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (notification_id) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query,
		req.NotificationID,
		req.UserID,
		req.Location.Latitude,
		req.Location.Longitude,
		req.State,
		req.OpenedAt,
		req.DeadlineAt,
	)
	if err != nil {
		return fmt.Errorf("failed to open check-in request: %w", err)
	}
	return nil
}

// Close переводит запрос в конечное состояние. Уже закрытый запрос не меняется.
func (r *CheckInRepository) Close(ctx context.Context, notificationID string, state models.RequestState) error {
	if !state.IsTerminal() {
		return fmt.Errorf("state %s is not terminal", state)
	}

	query := `
		UPDATE checkin_requests SET
			state = $1,
			closed_at = NOW()
		WHERE notification_id = $2 AND state = 'AWAITING_RESPONSE';
	`
	cmdTag, err := r.db.Exec(ctx, query, state, notificationID)
	if err != nil {
		return fmt.Errorf("failed to close check-in request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("awaiting check-in request %s not found", notificationID)
	}
	return nil
}

// ListAwaiting возвращает незакрытые запросы, самые свежие первыми
func (r *CheckInRepository) ListAwaiting(ctx context.Context) ([]*models.CheckInRequest, error) {
	query := `
		SELECT
			notification_id,
			user_id,
			latitude,
			longitude,
			state,
			opened_at,
			deadline_at
		FROM checkin_requests
		WHERE state = 'AWAITING_RESPONSE'
		ORDER BY opened_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list awaiting check-in requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.CheckInRequest, 0)
	for rows.Next() {
		req := &models.CheckInRequest{}
		err := rows.Scan(
			&req.NotificationID,
			&req.UserID,
			&req.Location.Latitude,
			&req.Location.Longitude,
			&req.State,
			&req.OpenedAt,
			&req.DeadlineAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListAwaiting: %w", err)
	}
	return requests, nil
}
