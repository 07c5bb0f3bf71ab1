package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/schedule"
	"github.com/iron-woodman/NailBot/internal/service/servicetest"
)

func newScheduleFixture() (*ScheduleService, *schedule.Calendar) {
	cal := schedule.NewCalendar(time.UTC)
	svc := NewScheduleService(servicetest.NewWorkDayStore(), servicetest.NewHolidayStore(), cal, zap.NewNop())
	return svc, cal
}

func TestUpdateWorkDay(t *testing.T) {
	svc, cal := newScheduleFixture()
	ctx := context.Background()

	// 2 марта 2026 — понедельник
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.False(t, cal.IsOpen(monday))

	day, err := svc.UpdateWorkDay(ctx, 0, "10:00", "19:30", true)
	require.NoError(t, err)
	assert.Equal(t, 10*60, day.StartMinute)
	assert.Equal(t, 19*60+30, day.EndMinute)
	assert.True(t, day.IsWorking)

	// календарь применил новое расписание
	assert.True(t, cal.IsOpen(monday))
	open, close, ok := cal.BusinessWindow(monday)
	require.True(t, ok)
	assert.True(t, open.Equal(time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)))
	assert.True(t, close.Equal(time.Date(2026, time.March, 2, 19, 30, 0, 0, time.UTC)))

	_, err = svc.UpdateWorkDay(ctx, 0, "09:00", "18:00", false)
	require.NoError(t, err)
	assert.False(t, cal.IsOpen(monday))
}

func TestUpdateWorkDayValidation(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	_, err := svc.UpdateWorkDay(ctx, 7, "09:00", "18:00", true)
	assert.ErrorIs(t, err, schedule.ErrValidation)

	_, err = svc.UpdateWorkDay(ctx, 0, "9 утра", "18:00", true)
	assert.ErrorIs(t, err, schedule.ErrValidation)

	_, err = svc.UpdateWorkDay(ctx, 0, "18:00", "09:00", true)
	assert.ErrorIs(t, err, schedule.ErrValidation)

	_, err = svc.UpdateWorkDay(ctx, 0, "09:00", "09:00", true)
	assert.ErrorIs(t, err, schedule.ErrValidation)
}

func TestHolidays(t *testing.T) {
	svc, cal := newScheduleFixture()
	ctx := context.Background()

	_, err := svc.UpdateWorkDay(ctx, 0, "09:00", "18:00", true)
	require.NoError(t, err)

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	require.True(t, cal.IsOpen(monday))

	// дата нормализуется до полуночи
	holiday, err := svc.AddHoliday(ctx, time.Date(2026, time.March, 2, 15, 40, 0, 0, time.UTC), "отпуск")
	require.NoError(t, err)
	assert.True(t, holiday.Date.Equal(monday))
	assert.False(t, cal.IsOpen(monday))

	_, err = svc.AddHoliday(ctx, monday, "повтор")
	assert.ErrorIs(t, err, schedule.ErrAlreadyExists)

	all, err := svc.Holidays(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, svc.RemoveHoliday(ctx, holiday.ID))
	assert.True(t, cal.IsOpen(monday))

	err = svc.RemoveHoliday(ctx, holiday.ID)
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}
