package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iron-woodman/NailBot/internal/model"
)

type HolidayRepository struct {
	pool *pgxpool.Pool
}

func NewHolidayRepository(pool *pgxpool.Pool) *HolidayRepository {
	return &HolidayRepository{pool: pool}
}

// Create добавляет выходной день
func (r *HolidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	query := `
		INSERT INTO holidays (date, reason)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, holiday.Date, holiday.Reason).Scan(&holiday.ID)
	if err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}

	return nil
}

// GetByID получает выходной по ID
func (r *HolidayRepository) GetByID(ctx context.Context, id int64) (*model.Holiday, error) {
	query := `
		SELECT id, date, reason
		FROM holidays
		WHERE id = $1
	`

	var holiday model.Holiday
	err := r.pool.QueryRow(ctx, query, id).Scan(&holiday.ID, &holiday.Date, &holiday.Reason)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get holiday by id: %w", err)
	}

	return &holiday, nil
}

// GetByDate получает выходной по дате
func (r *HolidayRepository) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	query := `
		SELECT id, date, reason
		FROM holidays
		WHERE date = $1
	`

	var holiday model.Holiday
	err := r.pool.QueryRow(ctx, query, date).Scan(&holiday.ID, &holiday.Date, &holiday.Reason)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get holiday by date: %w", err)
	}

	return &holiday, nil
}

// GetAll получает все выходные, отсортированные по дате
func (r *HolidayRepository) GetAll(ctx context.Context) ([]*model.Holiday, error) {
	query := `
		SELECT id, date, reason
		FROM holidays
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*model.Holiday
	for rows.Next() {
		var holiday model.Holiday
		if err := rows.Scan(&holiday.ID, &holiday.Date, &holiday.Reason); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, &holiday)
	}

	return holidays, nil
}

// Delete удаляет выходной день. В отличие от записей, выходные удаляются
// физически.
func (r *HolidayRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM holidays
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("holiday not found")
	}

	return nil
}
