package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iron-woodman/NailBot/internal/model"
)

// ScheduleRepository работает с недельным рабочим расписанием мастера.
// В таблице всегда ровно 7 строк (сеются миграцией), по одной на день недели.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// GetAll получает расписание на все дни недели
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]*model.WorkDay, error) {
	query := `
		SELECT id, weekday, start_minute, end_minute, is_working
		FROM work_schedule
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get work schedule: %w", err)
	}
	defer rows.Close()

	var days []*model.WorkDay
	for rows.Next() {
		var day model.WorkDay
		err := rows.Scan(
			&day.ID,
			&day.Weekday,
			&day.StartMinute,
			&day.EndMinute,
			&day.IsWorking,
		)
		if err != nil {
			return nil, fmt.Errorf("scan work day: %w", err)
		}
		days = append(days, &day)
	}

	return days, nil
}

// GetByWeekday получает расписание одного дня недели
func (r *ScheduleRepository) GetByWeekday(ctx context.Context, weekday int) (*model.WorkDay, error) {
	query := `
		SELECT id, weekday, start_minute, end_minute, is_working
		FROM work_schedule
		WHERE weekday = $1
	`

	var day model.WorkDay
	err := r.pool.QueryRow(ctx, query, weekday).Scan(
		&day.ID,
		&day.Weekday,
		&day.StartMinute,
		&day.EndMinute,
		&day.IsWorking,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get work day: %w", err)
	}

	return &day, nil
}

// Update обновляет рабочие часы одного дня недели
func (r *ScheduleRepository) Update(ctx context.Context, day *model.WorkDay) error {
	query := `
		UPDATE work_schedule
		SET start_minute = $1, end_minute = $2, is_working = $3
		WHERE weekday = $4
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		day.StartMinute,
		day.EndMinute,
		day.IsWorking,
		day.Weekday,
	).Scan(&day.ID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("work day not found")
		}
		return fmt.Errorf("update work day: %w", err)
	}

	return nil
}
