package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// CatalogService управляет каталогом услуг. Услуги никогда не удаляются
// физически — "удаление" деактивирует услугу, чтобы прошлые записи
// сохраняли валидную ссылку.
type CatalogService struct {
	store  ServiceStore
	logger *zap.Logger
}

func NewCatalogService(store ServiceStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// ServiceUpdate — частичное обновление услуги, nil-поля не меняются
type ServiceUpdate struct {
	Name            *string
	DurationMinutes *int
	Price           *int
	Description     *string
	Active          *bool
}

// Services возвращает все услуги, включая неактивные
func (s *CatalogService) Services(ctx context.Context) ([]*model.Service, error) {
	return s.store.GetAll(ctx)
}

// ActiveServices возвращает услуги, доступные для записи
func (s *CatalogService) ActiveServices(ctx context.Context) ([]*model.Service, error) {
	return s.store.GetActive(ctx)
}

// Service возвращает услугу по ID
func (s *CatalogService) Service(ctx context.Context, id int64) (*model.Service, error) {
	service, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %d: %w", id, schedule.ErrNotFound)
	}
	return service, nil
}

// Create создаёт новую услугу
func (s *CatalogService) Create(ctx context.Context, name string, durationMinutes, price int, description string) (*model.Service, error) {
	if err := validateService(name, durationMinutes, price); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check service name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("service %q: %w", name, schedule.ErrAlreadyExists)
	}

	service := &model.Service{
		Name:            name,
		DurationMinutes: durationMinutes,
		Price:           price,
		Description:     description,
		Active:          true,
	}

	if err := s.store.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.logger.Info("Service created",
		zap.Int64("service_id", service.ID),
		zap.String("name", service.Name),
	)

	return service, nil
}

// Update частично обновляет услугу
func (s *CatalogService) Update(ctx context.Context, id int64, update ServiceUpdate) (*model.Service, error) {
	service, err := s.Service(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != service.Name {
		existing, err := s.store.GetByName(ctx, *update.Name)
		if err != nil {
			return nil, fmt.Errorf("check service name: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("service %q: %w", *update.Name, schedule.ErrAlreadyExists)
		}
		service.Name = *update.Name
	}
	if update.DurationMinutes != nil {
		service.DurationMinutes = *update.DurationMinutes
	}
	if update.Price != nil {
		service.Price = *update.Price
	}
	if update.Description != nil {
		service.Description = *update.Description
	}
	if update.Active != nil {
		service.Active = *update.Active
	}

	if err := validateService(service.Name, service.DurationMinutes, service.Price); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}

	s.logger.Info("Service updated", zap.Int64("service_id", service.ID))

	return service, nil
}

// Deactivate помечает услугу недоступной для новых записей
func (s *CatalogService) Deactivate(ctx context.Context, id int64) (*model.Service, error) {
	service, err := s.Service(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Deactivate(ctx, id); err != nil {
		return nil, fmt.Errorf("deactivate service: %w", err)
	}
	service.Active = false

	s.logger.Info("Service deactivated",
		zap.Int64("service_id", id),
		zap.String("name", service.Name),
	)

	return service, nil
}

func validateService(name string, durationMinutes, price int) error {
	if name == "" {
		return fmt.Errorf("%w: service name is required", schedule.ErrValidation)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", schedule.ErrValidation, durationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative, got %d", schedule.ErrValidation, price)
	}
	return nil
}
