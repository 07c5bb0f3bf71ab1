package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/iron-woodman/NailBot/internal/model"
)

// Interval — занятый временной интервал активной (не отменённой) записи.
type Interval struct {
	AppointmentID int64
	Start         time.Time
	End           time.Time
}

// Calendar — календарь мастера: рабочее расписание на неделю, выходные дни
// и индекс занятых интервалов активных записей. Единственный источник правды
// для проверок пересечений; все мутации индекса идут через Reserve/Release,
// прямой записи извне нет.
//
// Потокобезопасен: записи (бронирование, правки расписания) берут write-lock,
// чтение слотов идёт под read-lock по снимку интервалов дня.
type Calendar struct {
	mu         sync.RWMutex
	loc        *time.Location
	days       [7]model.WorkDay
	holidays   map[string]struct{}   // ключ даты -> выходной
	intervals  map[string][]Interval // ключ даты -> интервалы, отсортированы по началу
	byID       map[int64]string      // ID записи -> ключ даты интервала
	reserveSeq int64                 // отрицательные временные ID незакоммиченных броней
}

// NewCalendar создаёт пустой календарь: все дни нерабочие, выходных нет.
func NewCalendar(loc *time.Location) *Calendar {
	c := &Calendar{
		loc:       loc,
		holidays:  make(map[string]struct{}),
		intervals: make(map[string][]Interval),
		byID:      make(map[int64]string),
	}
	for i := range c.days {
		c.days[i] = model.WorkDay{Weekday: i, IsWorking: false}
	}
	return c
}

// Location возвращает текущий часовой пояс календаря
func (c *Calendar) Location() *time.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loc
}

// SetLocation меняет часовой пояс календаря
func (c *Calendar) SetLocation(loc *time.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loc = loc
}

// SetWorkDay устанавливает рабочие часы для одного дня недели
func (c *Calendar) SetWorkDay(day model.WorkDay) error {
	if day.Weekday < 0 || day.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be 0..6, got %d", ErrValidation, day.Weekday)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.days[day.Weekday] = day
	return nil
}

// WorkDays возвращает копию недельного расписания
func (c *Calendar) WorkDays() [7]model.WorkDay {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.days
}

// AddHoliday отмечает дату как выходной день
func (c *Calendar) AddHoliday(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holidays[DateKey(date)] = struct{}{}
}

// RemoveHoliday снимает отметку выходного дня с даты
func (c *Calendar) RemoveHoliday(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.holidays, DateKey(date))
}

// IsOpen сообщает, открыт ли мастер в указанную дату: false, если дата
// отмечена выходным или день недели нерабочий по расписанию.
func (c *Calendar) IsOpen(date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isOpenLocked(date)
}

func (c *Calendar) isOpenLocked(date time.Time) bool {
	if _, holiday := c.holidays[DateKey(date)]; holiday {
		return false
	}
	return c.days[WeekdayIndex(date)].IsWorking
}

// BusinessWindow возвращает рабочее окно даты в часовом поясе календаря.
// ok=false, если день закрыт.
func (c *Calendar) BusinessWindow(date time.Time) (open, close time.Time, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.businessWindowLocked(date)
}

func (c *Calendar) businessWindowLocked(date time.Time) (open, close time.Time, ok bool) {
	if !c.isOpenLocked(date) {
		return time.Time{}, time.Time{}, false
	}
	day := c.days[WeekdayIndex(date)]
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc)
	open = midnight.Add(time.Duration(day.StartMinute) * time.Minute)
	close = midnight.Add(time.Duration(day.EndMinute) * time.Minute)
	return open, close, true
}

// Overlaps проверяет, пересекается ли [start, end) с какой-либо активной записью
func (c *Calendar) Overlaps(start, end time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return overlapsAny(start, end, c.intervals[c.dayKeyLocked(start)])
}

// DayIntervals возвращает копию занятых интервалов на дату (снимок для
// генерации слотов)
func (c *Calendar) DayIntervals(date time.Time) []Interval {
	c.mu.RLock()
	defer c.mu.RUnlock()

	day := c.intervals[DateKey(date.In(c.loc))]
	out := make([]Interval, len(day))
	copy(out, day)
	return out
}

// Reservation — незакоммиченная бронь интервала. Победитель гонки держит
// интервал в индексе ещё до записи в БД: после сохранения вызывается Commit
// с настоящим ID записи, при ошибке сохранения — Release.
type Reservation struct {
	cal    *Calendar
	tempID int64
}

// Reserve атомарно выполняет проверки бронирования (день открыт, интервал
// внутри рабочего окна, нет пересечений) и занимает интервал под одним
// write-lock. Из двух одновременных броней пересекающихся интервалов
// проходит ровно одна, вторая получает ErrSlotTaken.
func (c *Calendar) Reserve(start, end time.Time) (*Reservation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start = start.In(c.loc)
	end = end.In(c.loc)

	if !c.isOpenLocked(start) {
		return nil, ErrClosedDay
	}

	open, close, _ := c.businessWindowLocked(start)
	if start.Before(open) || end.After(close) {
		return nil, ErrOutsideHours
	}

	key := DateKey(start)
	if overlapsAny(start, end, c.intervals[key]) {
		return nil, ErrSlotTaken
	}

	c.reserveSeq--
	tempID := c.reserveSeq
	c.insertLocked(key, Interval{AppointmentID: tempID, Start: start, End: end})

	return &Reservation{cal: c, tempID: tempID}, nil
}

// Commit заменяет временный ID брони на ID сохранённой записи
func (r *Reservation) Commit(appointmentID int64) {
	c := r.cal
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.byID[r.tempID]
	if !ok {
		return
	}
	day := c.intervals[key]
	for i := range day {
		if day[i].AppointmentID == r.tempID {
			day[i].AppointmentID = appointmentID
			break
		}
	}
	delete(c.byID, r.tempID)
	c.byID[appointmentID] = key
}

// Release снимает незакоммиченную бронь (откат при ошибке сохранения)
func (r *Reservation) Release() {
	r.cal.Release(r.tempID)
}

// Release удаляет интервал записи из активного индекса (отмена).
// Возвращает false, если интервала с таким ID нет.
func (c *Calendar) Release(appointmentID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.byID[appointmentID]
	if !ok {
		return false
	}
	day := c.intervals[key]
	for i := range day {
		if day[i].AppointmentID == appointmentID {
			c.intervals[key] = append(day[:i], day[i+1:]...)
			break
		}
	}
	if len(c.intervals[key]) == 0 {
		delete(c.intervals, key)
	}
	delete(c.byID, appointmentID)
	return true
}

// Restore добавляет интервал активной записи при загрузке календаря из БД.
// Пересечение здесь означает, что в БД уже лежат две пересекающиеся активные
// записи — нарушение инварианта, чинить его молча нельзя.
func (c *Calendar) Restore(appointmentID int64, start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start = start.In(c.loc)
	end = end.In(c.loc)
	key := DateKey(start)
	if overlapsAny(start, end, c.intervals[key]) {
		panic(fmt.Sprintf("schedule: persisted appointments overlap on %s (appointment %d)", key, appointmentID))
	}
	c.insertLocked(key, Interval{AppointmentID: appointmentID, Start: start, End: end})
}

func (c *Calendar) dayKeyLocked(t time.Time) string {
	return DateKey(t.In(c.loc))
}

// insertLocked вставляет интервал, сохраняя сортировку по времени начала
func (c *Calendar) insertLocked(key string, iv Interval) {
	day := c.intervals[key]
	pos := len(day)
	for i := range day {
		if iv.Start.Before(day[i].Start) {
			pos = i
			break
		}
	}
	day = append(day, Interval{})
	copy(day[pos+1:], day[pos:])
	day[pos] = iv
	c.intervals[key] = day
	c.byID[iv.AppointmentID] = key
}
