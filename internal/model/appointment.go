package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled" // Запись подтверждена
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // Отменена (терминальный статус)
	AppointmentStatusCompleted AppointmentStatus = "completed" // Услуга оказана
)

type Appointment struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	ServiceID int64             `json:"service_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"` // зафиксировано при создании, не пересчитывается
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	User    *User    `json:"user,omitempty"`
	Service *Service `json:"service,omitempty"`
}
