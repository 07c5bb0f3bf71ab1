package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iron-woodman/NailBot/internal/model"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// AppointmentFilter — фильтр списка записей для админки
type AppointmentFilter struct {
	Status   model.AppointmentStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

const appointmentColumns = `
	a.id, a.user_id, a.service_id, a.start_time, a.end_time, a.status, a.created_at,
	u.id, u.telegram_id, u.username, u.full_name, u.created_at,
	s.id, s.name, s.duration_minutes, s.price, s.description, s.active, s.created_at
`

// Create создаёт новую запись
func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (user_id, service_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		appointment.UserID,
		appointment.ServiceID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt)

	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID вместе с пользователем и услугой
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN services s ON s.id = a.service_id
		WHERE a.id = $1
	`

	appointment, err := scanAppointment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return appointment, nil
}

// List получает записи по фильтру, новые первыми
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN services s ON s.id = a.service_id
		WHERE ($1 = '' OR a.status = $1)
		  AND ($2::timestamptz IS NULL OR a.start_time >= $2)
		  AND ($3::timestamptz IS NULL OR a.start_time <= $3)
		ORDER BY a.start_time DESC
	`

	rows, err := r.pool.Query(ctx, query, string(filter.Status), filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

// ListUpcomingByUser получает предстоящие активные записи пользователя
func (r *AppointmentRepository) ListUpcomingByUser(ctx context.Context, userID int64, now time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN services s ON s.id = a.service_id
		WHERE a.user_id = $1
		  AND a.status = 'scheduled'
		  AND a.start_time >= $2
		ORDER BY a.start_time
	`

	rows, err := r.pool.Query(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

// ListActiveFrom получает активные записи, заканчивающиеся после from.
// Используется при загрузке календаря на старте.
func (r *AppointmentRepository) ListActiveFrom(ctx context.Context, from time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN services s ON s.id = a.service_id
		WHERE a.status = 'scheduled'
		  AND a.end_time > $1
		ORDER BY a.start_time
	`

	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("list active appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

// UpdateStatus переводит запись из статуса from в to. Возвращает false,
// если запись уже не в статусе from: из двух одновременных переходов
// проходит ровно один.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $1
		WHERE id = $2
		  AND status = $3
	`

	result, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update appointment status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CompletePast помечает завершёнными активные записи, закончившиеся к now
func (r *AppointmentRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE appointments
		SET status = 'completed'
		WHERE status = 'scheduled'
		  AND end_time <= $1
	`

	result, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("complete past appointments: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var (
		appointment model.Appointment
		user        model.User
		service     model.Service
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.ServiceID,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.CreatedAt,
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FullName,
		&user.CreatedAt,
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Description,
		&service.Active,
		&service.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.User = &user
	appointment.Service = &service
	return &appointment, nil
}

func collectAppointments(rows pgx.Rows) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}
