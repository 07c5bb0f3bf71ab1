package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/service/servicetest"
)

func TestLoadCalendar(t *testing.T) {
	ctx := context.Background()
	settings := servicetest.NewSettingsStore()
	workDays := servicetest.NewWorkDayStore()
	holidays := servicetest.NewHolidayStore()
	appointments := servicetest.NewAppointmentStore()

	holidayDate := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, holidays.Create(ctx, &model.Holiday{Date: holidayDate, Reason: "отпуск"}))

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	require.NoError(t, appointments.Create(ctx, &model.Appointment{
		UserID:    1,
		ServiceID: 1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.AppointmentStatusScheduled,
	}))
	// завершённые записи не занимают календарь
	pastStart := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, appointments.Create(ctx, &model.Appointment{
		UserID:    1,
		ServiceID: 1,
		StartTime: pastStart,
		EndTime:   pastStart.Add(time.Hour),
		Status:    model.AppointmentStatusCompleted,
	}))

	cal, err := LoadCalendar(ctx, settings, workDays, holidays, appointments, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "UTC", cal.Location().String())
	assert.False(t, cal.IsOpen(holidayDate))
	assert.True(t, cal.IsOpen(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, cal.Overlaps(start, start.Add(time.Hour)))
	assert.False(t, cal.Overlaps(pastStart, pastStart.Add(time.Hour)))
}

func TestLoadCalendarBadTimezone(t *testing.T) {
	settings := servicetest.NewSettingsStore()
	settings.Current.Timezone = "Mars/Olympus"

	_, err := LoadCalendar(context.Background(), settings,
		servicetest.NewWorkDayStore(), servicetest.NewHolidayStore(), servicetest.NewAppointmentStore(), zap.NewNop())
	assert.Error(t, err)
}
