package schedule

import "time"

// AvailableSlots возвращает времена начала свободных слотов внутри рабочего
// окна [open, close). Сетка слотов выровнена по началу окна с шагом, равным
// длительности услуги. Слот подходит, если интервал [t, t+duration)
// полностью помещается в окно, начинается строго в будущем и не пересекается
// ни с одной занятой записью. Интервалы полуоткрытые: записи "впритык"
// (конец одной == начало следующей) не считаются пересечением.
func AvailableSlots(open, close time.Time, duration time.Duration, busy []Interval, now time.Time) []time.Time {
	if duration <= 0 {
		return nil
	}
	if !close.After(open) {
		return nil
	}

	var slots []time.Time
	for t := open; !t.Add(duration).After(close); t = t.Add(duration) {
		if !t.After(now) {
			continue
		}
		if !overlapsAny(t, t.Add(duration), busy) {
			slots = append(slots, t)
		}
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// [start, end) пересекается с [b.Start, b.End) <=> start < b.End && b.Start < end
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
