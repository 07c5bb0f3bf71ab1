package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/schedule"
)

// AvailabilityService вычисляет свободные слоты для записи. Только читает
// календарь; состояние между вызовами не хранится — повторный запрос с теми
// же данными даёт тот же результат.
type AvailabilityService struct {
	services ServiceStore
	settings SettingsStore
	cal      *schedule.Calendar
	logger   *zap.Logger
	now      func() time.Time
}

func NewAvailabilityService(services ServiceStore, settings SettingsStore, cal *schedule.Calendar, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		services: services,
		settings: settings,
		cal:      cal,
		logger:   logger,
		now:      time.Now,
	}
}

// AvailableSlots возвращает упорядоченные времена начала свободных слотов
// услуги на указанную дату. Закрытый день (выходной или нерабочий день
// недели) — это пустой список, а не ошибка.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, serviceID int64, date time.Time) ([]time.Time, error) {
	service, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if service == nil || !service.Active {
		return nil, schedule.ErrServiceUnavailable
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	loc := s.cal.Location()
	now := s.now().In(loc)
	day := midnight(date.In(loc))

	if err := checkHorizon(day, midnight(now), settings.PlanningHorizonDays); err != nil {
		return nil, err
	}

	open, close, ok := s.cal.BusinessWindow(day)
	if !ok {
		return nil, nil
	}

	busy := s.cal.DayIntervals(day)
	return schedule.AvailableSlots(open, close, service.Duration(), busy, now), nil
}

// AvailableDates возвращает открытые даты внутри горизонта планирования,
// начиная с сегодняшней
func (s *AvailabilityService) AvailableDates(ctx context.Context) ([]time.Time, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	loc := s.cal.Location()
	today := midnight(s.now().In(loc))

	var dates []time.Time
	for i := 0; i < settings.PlanningHorizonDays; i++ {
		day := today.AddDate(0, 0, i)
		if s.cal.IsOpen(day) {
			dates = append(dates, day)
		}
	}
	return dates, nil
}

// checkHorizon проверяет, что дата не в прошлом и не дальше горизонта
// планирования: допустимы дни [сегодня, сегодня+horizon).
func checkHorizon(day, today time.Time, horizonDays int) error {
	if day.Before(today) {
		return schedule.ErrOutOfHorizon
	}
	if !day.Before(today.AddDate(0, 0, horizonDays)) {
		return schedule.ErrOutOfHorizon
	}
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
