package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock разбирает время "HH:MM" в минуты от полуночи
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: invalid time format %q, expected HH:MM", ErrValidation, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: invalid hours in %q", ErrValidation, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: invalid minutes in %q", ErrValidation, s)
	}

	return hours*60 + minutes, nil
}

// FormatClock форматирует минуты от полуночи как "HH:MM"
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// WeekdayIndex переводит time.Weekday в индекс 0=понедельник ... 6=воскресенье
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DateKey возвращает ключ календарной даты "YYYY-MM-DD"
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
