package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iron-woodman/NailBot/internal/model"
)

// SettingsRepository работает с единственной строкой настроек (id=1)
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get получает настройки приложения
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	query := `
		SELECT id, admin_id, planning_horizon_days, timezone
		FROM settings
		WHERE id = 1
	`

	var settings model.Settings
	err := r.pool.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.AdminID,
		&settings.PlanningHorizonDays,
		&settings.Timezone,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// Upsert создаёт или обновляет строку настроек
func (r *SettingsRepository) Upsert(ctx context.Context, settings *model.Settings) error {
	query := `
		INSERT INTO settings (id, admin_id, planning_horizon_days, timezone)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET admin_id = EXCLUDED.admin_id,
		    planning_horizon_days = EXCLUDED.planning_horizon_days,
		    timezone = EXCLUDED.timezone
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		settings.AdminID,
		settings.PlanningHorizonDays,
		settings.Timezone,
	).Scan(&settings.ID)

	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}
