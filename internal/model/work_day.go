package model

// WorkDay описывает рабочие часы мастера для одного дня недели.
// Weekday: 0 = понедельник ... 6 = воскресенье.
// Время хранится в минутах от полуночи (локальное время мастера).
type WorkDay struct {
	ID          int64 `json:"id"`
	Weekday     int   `json:"weekday"`
	StartMinute int   `json:"start_minute"`
	EndMinute   int   `json:"end_minute"`
	IsWorking   bool  `json:"is_working"`
}
