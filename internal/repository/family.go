package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/service"
)

type FamilyRepository struct {
	db *pgxpool.Pool
}

func NewFamilyRepository(db *pgxpool.Pool) service.FamilyDirectory {
	return &FamilyRepository{
		db: db,
	}
}

// FamilyOf возвращает семью пользователя или service.ErrNoFamily
func (r *FamilyRepository) FamilyOf(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT family_id
		FROM family_members
		WHERE user_id = $1;
	`
	var familyID string
	err := r.db.QueryRow(ctx, query, userID).Scan(&familyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", service.ErrNoFamily
		}
		return "", fmt.Errorf("failed to get family of user: %w", err)
	}
	return familyID, nil
}

// Members возвращает всех участников семьи, включая запрашивающего
func (r *FamilyRepository) Members(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	query := `
		SELECT
			u.id,
			u.name,
			fm.role,
			COALESCE(u.email, '')
		FROM family_members fm
		JOIN users u ON u.id = fm.user_id
		WHERE fm.family_id = $1
		ORDER BY fm.joined_at, u.id;
	`
	rows, err := r.db.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	defer rows.Close()

	members := make([]models.FamilyMember, 0)
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan family member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in Members: %w", err)
	}
	return members, nil
}
