package schedule

import (
	"testing"
	"time"
)

func TestAvailableSlots_FullDayGrid(t *testing.T) {
	loc := time.UTC
	// Понедельник, 09:00-17:00, услуга 30 минут, записей нет.
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	open := day.Add(9 * time.Hour)
	close := day.Add(17 * time.Hour)

	slots := AvailableSlots(open, close, 30*time.Minute, nil, day)
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(9 * time.Hour)) {
		t.Fatalf("expected first slot 09:00, got %s", slots[0].Format(time.RFC3339))
	}
	if !slots[15].Equal(day.Add(16*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected last slot 16:30, got %s", slots[15].Format(time.RFC3339))
	}
}

func TestAvailableSlots_BusyIntervalRemoved(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	open := day.Add(9 * time.Hour)
	close := day.Add(17 * time.Hour)

	busy := []Interval{
		{AppointmentID: 1, Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 30*time.Minute)},
	}

	slots := AvailableSlots(open, close, 30*time.Minute, busy, day)
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots after booking 09:00, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Equal(day.Add(9 * time.Hour)) {
			t.Fatalf("booked 09:00 slot still offered")
		}
	}
	// 09:30 сразу за занятым интервалом остаётся доступным (полуоткрытые интервалы)
	if !slots[0].Equal(day.Add(9*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected first free slot 09:30, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_LastSlotEndsAtClose(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	open := day.Add(9 * time.Hour)
	close := day.Add(10 * time.Hour)

	// Слот, заканчивающийся ровно в close, валиден; слот, начинающийся в close, — нет.
	slots := AvailableSlots(open, close, 60*time.Minute, nil, day)
	if len(slots) != 1 {
		t.Fatalf("expected exactly 1 slot, got %d", len(slots))
	}
	if !slots[0].Equal(open) {
		t.Fatalf("expected slot at 09:00, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_SkipsPast(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	open := day.Add(9 * time.Hour)
	close := day.Add(11 * time.Hour)

	now := day.Add(9*time.Hour + 45*time.Minute)
	slots := AvailableSlots(open, close, 30*time.Minute, nil, now)
	// 09:00 и 09:30 уже в прошлом, остаются 10:00 и 10:30.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("expected first slot 10:00, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_ExcludesStartAtNow(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	open := day.Add(9 * time.Hour)
	close := day.Add(11 * time.Hour)

	// "Сейчас" ровно на границе сетки: слот 10:00 уже не предлагается.
	now := day.Add(10 * time.Hour)
	slots := AvailableSlots(open, close, 30*time.Minute, nil, now)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(10*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected slot 10:30, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_Deterministic(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	open := day.Add(9 * time.Hour)
	close := day.Add(17 * time.Hour)
	busy := []Interval{
		{AppointmentID: 1, Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour)},
	}

	first := AvailableSlots(open, close, 45*time.Minute, busy, day)
	second := AvailableSlots(open, close, 45*time.Minute, busy, day)
	if len(first) != len(second) {
		t.Fatalf("repeated call returned different lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("slot %d differs between calls: %s vs %s", i, first[i], second[i])
		}
		if i > 0 && !first[i-1].Before(first[i]) {
			t.Fatalf("slots not in ascending order at %d", i)
		}
	}
}

func TestAvailableSlots_Degenerate(t *testing.T) {
	loc := time.UTC
	open := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	if got := AvailableSlots(open, open, 30*time.Minute, nil, open); got != nil {
		t.Fatalf("empty window must yield no slots, got %v", got)
	}
	if got := AvailableSlots(open, open.Add(time.Hour), 0, nil, open); got != nil {
		t.Fatalf("zero duration must yield no slots, got %v", got)
	}
	// Услуга длиннее окна — слотов нет.
	if got := AvailableSlots(open, open.Add(time.Hour), 90*time.Minute, nil, open); got != nil {
		t.Fatalf("duration longer than window must yield no slots, got %v", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9", 0, true},
		{"ab:cd", 0, true},
		{"12:60", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if back := FormatClock(got); back != tc.in {
			t.Errorf("FormatClock(%d) = %q, want %q", got, back, tc.in)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 2026-03-02 — понедельник
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := WeekdayIndex(monday.AddDate(0, 0, i)); got != i {
			t.Errorf("day +%d: WeekdayIndex = %d, want %d", i, got, i)
		}
	}
}
