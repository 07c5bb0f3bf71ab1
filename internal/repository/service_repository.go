package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iron-woodman/NailBot/internal/model"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// Create создаёт новую услугу
func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (name, duration_minutes, price, description, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		service.Name,
		service.DurationMinutes,
		service.Price,
		service.Description,
		service.Active,
	).Scan(&service.ID, &service.CreatedAt)

	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	return nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, duration_minutes, price, description, active, created_at
		FROM services
		WHERE id = $1
	`

	var service model.Service
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Description,
		&service.Active,
		&service.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &service, nil
}

// GetByName получает услугу по названию
func (r *ServiceRepository) GetByName(ctx context.Context, name string) (*model.Service, error) {
	query := `
		SELECT id, name, duration_minutes, price, description, active, created_at
		FROM services
		WHERE name = $1
	`

	var service model.Service
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Description,
		&service.Active,
		&service.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by name: %w", err)
	}

	return &service, nil
}

// GetAll получает все услуги, отсортированные по названию
func (r *ServiceRepository) GetAll(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, duration_minutes, price, description, active, created_at
		FROM services
		ORDER BY name
	`
	return r.queryServices(ctx, query)
}

// GetActive получает только активные услуги
func (r *ServiceRepository) GetActive(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, duration_minutes, price, description, active, created_at
		FROM services
		WHERE active = TRUE
		ORDER BY name
	`
	return r.queryServices(ctx, query)
}

// Update обновляет услугу целиком
func (r *ServiceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, duration_minutes = $2, price = $3, description = $4, active = $5
		WHERE id = $6
	`

	result, err := r.pool.Exec(
		ctx, query,
		service.Name,
		service.DurationMinutes,
		service.Price,
		service.Description,
		service.Active,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

// Deactivate помечает услугу неактивной. Услуги не удаляются физически:
// прошлые записи должны сохранять ссылку на услугу.
func (r *ServiceRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE services
		SET active = FALSE
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

func (r *ServiceRepository) queryServices(ctx context.Context, query string, args ...interface{}) ([]*model.Service, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var service model.Service
		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.Description,
			&service.Active,
			&service.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &service)
	}

	return services, nil
}
