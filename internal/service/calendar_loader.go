package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/schedule"
)

// LoadCalendar собирает календарь мастера из БД при старте: часовой пояс из
// настроек, недельное расписание, выходные и интервалы активных записей,
// которые ещё не закончились. Пересечение уже сохранённых активных записей —
// фатальное нарушение инварианта, Restore паникует.
func LoadCalendar(
	ctx context.Context,
	settings SettingsStore,
	workDays WorkDayStore,
	holidays HolidayStore,
	appointments AppointmentStore,
	logger *zap.Logger,
) (*schedule.Calendar, error) {
	cfg, err := settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("settings row is missing")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	cal := schedule.NewCalendar(loc)

	days, err := workDays.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load work schedule: %w", err)
	}
	for _, day := range days {
		if err := cal.SetWorkDay(*day); err != nil {
			return nil, fmt.Errorf("apply work day %d: %w", day.Weekday, err)
		}
	}

	holidayList, err := holidays.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	for _, holiday := range holidayList {
		cal.AddHoliday(holiday.Date)
	}

	active, err := appointments.ListActiveFrom(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("load active appointments: %w", err)
	}
	for _, appointment := range active {
		cal.Restore(appointment.ID, appointment.StartTime, appointment.EndTime)
	}

	logger.Info("Calendar loaded",
		zap.String("timezone", cfg.Timezone),
		zap.Int("holidays", len(holidayList)),
		zap.Int("active_appointments", len(active)),
	)

	return cal, nil
}
