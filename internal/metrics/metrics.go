package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BookingsCreated — успешно созданные записи
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nailbot_bookings_created_total",
		Help: "Number of successfully created appointments.",
	})

	// BookingsCancelled — отменённые записи
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nailbot_bookings_cancelled_total",
		Help: "Number of cancelled appointments.",
	})

	// SlotConflicts — проигранные гонки за слот
	SlotConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nailbot_slot_conflicts_total",
		Help: "Number of booking attempts rejected because the slot was taken.",
	})

	// AppointmentsCompleted — записи, помеченные завершёнными фоновой задачей
	AppointmentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nailbot_appointments_completed_total",
		Help: "Number of appointments marked completed by the background task.",
	})
)

// Handler возвращает HTTP-обработчик /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
