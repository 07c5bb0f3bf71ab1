package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// SettingsService управляет настройками приложения: горизонтом планирования
// и часовым поясом мастера.
type SettingsService struct {
	store  SettingsStore
	cal    *schedule.Calendar
	logger *zap.Logger
}

func NewSettingsService(store SettingsStore, cal *schedule.Calendar, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		cal:    cal,
		logger: logger,
	}
}

// Get возвращает текущие настройки
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("settings row is missing: %w", schedule.ErrNotFound)
	}
	return settings, nil
}

// Update меняет горизонт планирования и часовой пояс. Новый часовой пояс
// сразу применяется к календарю.
func (s *SettingsService) Update(ctx context.Context, horizonDays int, timezone string) (*model.Settings, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: planning horizon must be positive, got %d", schedule.ErrValidation, horizonDays)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", schedule.ErrValidation, timezone)
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.PlanningHorizonDays = horizonDays
	settings.Timezone = timezone

	if err := s.store.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.cal.SetLocation(loc)

	s.logger.Info("Settings updated",
		zap.Int("planning_horizon_days", horizonDays),
		zap.String("timezone", timezone),
	)

	return settings, nil
}
