package model

import "time"

// Holiday — выходной/праздничный день, перекрывает рабочее расписание
// на эту дату целиком.
type Holiday struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"` // только дата, полночь UTC
	Reason string    `json:"reason"`
}
