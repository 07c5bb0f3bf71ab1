package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// ScheduleService — административные операции над рабочим расписанием и
// выходными днями. Каждая правка сохраняется в БД и применяется к календарю.
type ScheduleService struct {
	workDays WorkDayStore
	holidays HolidayStore
	cal      *schedule.Calendar
	logger   *zap.Logger
}

func NewScheduleService(workDays WorkDayStore, holidays HolidayStore, cal *schedule.Calendar, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		workDays: workDays,
		holidays: holidays,
		cal:      cal,
		logger:   logger,
	}
}

// WorkDays возвращает расписание на все 7 дней недели
func (s *ScheduleService) WorkDays(ctx context.Context) ([]*model.WorkDay, error) {
	return s.workDays.GetAll(ctx)
}

// UpdateWorkDay обновляет рабочие часы одного дня недели.
// startClock/endClock в формате "HH:MM".
func (s *ScheduleService) UpdateWorkDay(ctx context.Context, weekday int, startClock, endClock string, isWorking bool) (*model.WorkDay, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be 0 (Mon) .. 6 (Sun), got %d", schedule.ErrValidation, weekday)
	}

	startMinute, err := schedule.ParseClock(startClock)
	if err != nil {
		return nil, err
	}
	endMinute, err := schedule.ParseClock(endClock)
	if err != nil {
		return nil, err
	}
	if isWorking && startMinute >= endMinute {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s", schedule.ErrValidation, startClock, endClock)
	}

	day, err := s.workDays.GetByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("get work day: %w", err)
	}
	if day == nil {
		return nil, fmt.Errorf("work day %d: %w", weekday, schedule.ErrNotFound)
	}

	day.StartMinute = startMinute
	day.EndMinute = endMinute
	day.IsWorking = isWorking

	if err := s.workDays.Update(ctx, day); err != nil {
		return nil, fmt.Errorf("update work day: %w", err)
	}

	if err := s.cal.SetWorkDay(*day); err != nil {
		return nil, err
	}

	s.logger.Info("Work day updated",
		zap.Int("weekday", weekday),
		zap.String("start", startClock),
		zap.String("end", endClock),
		zap.Bool("is_working", isWorking),
	)

	return day, nil
}

// Holidays возвращает все выходные дни
func (s *ScheduleService) Holidays(ctx context.Context) ([]*model.Holiday, error) {
	return s.holidays.GetAll(ctx)
}

// AddHoliday добавляет выходной день. Дата нормализуется до полуночи UTC,
// повторное добавление той же даты — конфликт.
func (s *ScheduleService) AddHoliday(ctx context.Context, date time.Time, reason string) (*model.Holiday, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	existing, err := s.holidays.GetByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("check holiday: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("holiday %s: %w", schedule.DateKey(day), schedule.ErrAlreadyExists)
	}

	holiday := &model.Holiday{Date: day, Reason: reason}
	if err := s.holidays.Create(ctx, holiday); err != nil {
		return nil, fmt.Errorf("create holiday: %w", err)
	}

	s.cal.AddHoliday(day)

	s.logger.Info("Holiday added",
		zap.String("date", schedule.DateKey(day)),
		zap.String("reason", reason),
	)

	return holiday, nil
}

// RemoveHoliday удаляет выходной день (физически, в отличие от отмены записи)
func (s *ScheduleService) RemoveHoliday(ctx context.Context, id int64) error {
	holiday, err := s.holidays.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get holiday: %w", err)
	}
	if holiday == nil {
		return fmt.Errorf("holiday %d: %w", id, schedule.ErrNotFound)
	}

	if err := s.holidays.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}

	s.cal.RemoveHoliday(holiday.Date)

	s.logger.Info("Holiday removed", zap.String("date", schedule.DateKey(holiday.Date)))

	return nil
}
