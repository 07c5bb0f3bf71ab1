package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iron-woodman/NailBot/internal/schedule"
)

func TestAvailableSlotsFullDay(t *testing.T) {
	f := newFixture(t)

	// вторник целиком в будущем: 9 часовых слотов с 09:00 до 17:00
	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	slots, err := f.availability.AvailableSlots(context.Background(), f.serviceID, day)
	require.NoError(t, err)
	require.Len(t, slots, 9)
	assert.True(t, slots[0].Equal(time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)))
	assert.True(t, slots[8].Equal(time.Date(2026, time.March, 3, 17, 0, 0, 0, time.UTC)))
}

func TestAvailableSlotsExcludeBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	booked := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	_, err := f.booking.Book(ctx, f.serviceID, f.userID, booked)
	require.NoError(t, err)

	slots, err := f.availability.AvailableSlots(ctx, f.serviceID, day)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
	for _, slot := range slots {
		assert.False(t, slot.Equal(booked))
	}
}

func TestAvailableSlotsSkipPastToday(t *testing.T) {
	f := newFixture(t)

	// сейчас 08:00; сдвигаем часы на 11:30 — утренние слоты пропадают
	f.availability.now = func() time.Time {
		return time.Date(2026, time.March, 2, 11, 30, 0, 0, time.UTC)
	}

	today := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	slots, err := f.availability.AvailableSlots(context.Background(), f.serviceID, today)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Equal(time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)))
}

func TestAvailableSlotsClosedDayIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// суббота: закрытый день — пустой список, не ошибка
	saturday := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	slots, err := f.availability.AvailableSlots(ctx, f.serviceID, saturday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	f.cal.AddHoliday(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))
	slots, err = f.availability.AvailableSlots(ctx, f.serviceID, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsHorizon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.availability.AvailableSlots(ctx, f.serviceID, testNow.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, schedule.ErrOutOfHorizon)

	_, err = f.availability.AvailableSlots(ctx, f.serviceID, testNow.AddDate(0, 0, 30))
	assert.ErrorIs(t, err, schedule.ErrOutOfHorizon)
}

func TestAvailableSlotsInactiveService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.services.Deactivate(ctx, f.serviceID))
	_, err := f.availability.AvailableSlots(ctx, f.serviceID, testNow)
	assert.ErrorIs(t, err, schedule.ErrServiceUnavailable)

	_, err = f.availability.AvailableSlots(ctx, 999, testNow)
	assert.ErrorIs(t, err, schedule.ErrServiceUnavailable)
}

func TestAvailableDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dates, err := f.availability.AvailableDates(ctx)
	require.NoError(t, err)

	// 30 дней с 2 марта: будни минус выходные-субботы-воскресенья
	require.NotEmpty(t, dates)
	assert.True(t, dates[0].Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)))
	for _, date := range dates {
		assert.True(t, f.cal.IsOpen(date))
	}
	// 30-дневное окно Mar 2 .. Mar 31 содержит ровно 22 будних дня
	assert.Len(t, dates, 22)

	f.cal.AddHoliday(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))
	dates, err = f.availability.AvailableDates(ctx)
	require.NoError(t, err)
	assert.Len(t, dates, 21)
}

func TestAvailableSlotsDeterministic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	first, err := f.availability.AvailableSlots(ctx, f.serviceID, day)
	require.NoError(t, err)
	second, err := f.availability.AvailableSlots(ctx, f.serviceID, day)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
