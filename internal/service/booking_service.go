package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/metrics"
	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/repository"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// Notifier получает уведомления о событиях бронирования после коммита.
// Реализация живёт в telegram-контроллере; ядро не блокируется на отправке
// и не держит блокировку календаря во время уведомления.
type Notifier interface {
	AppointmentBooked(ctx context.Context, appointment *model.Appointment)
	AppointmentCancelled(ctx context.Context, appointment *model.Appointment)
}

// BookingService — единственный путь создания и отмены записей.
// Все инварианты (день открыт, рабочие часы, отсутствие пересечений)
// проверяются атомарно через бронь календаря: из двух одновременных
// запросов на пересекающиеся интервалы проходит ровно один.
type BookingService struct {
	users        UserStore
	services     ServiceStore
	appointments AppointmentStore
	settings     SettingsStore
	cal          *schedule.Calendar
	notifier     Notifier // может быть nil
	logger       *zap.Logger
	now          func() time.Time
}

func NewBookingService(
	users UserStore,
	services ServiceStore,
	appointments AppointmentStore,
	settings SettingsStore,
	cal *schedule.Calendar,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		users:        users,
		services:     services,
		appointments: appointments,
		settings:     settings,
		cal:          cal,
		logger:       logger,
		now:          time.Now,
	}
}

// SetNotifier подключает получателя уведомлений (после создания контроллера)
func (s *BookingService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Book создаёт запись пользователя на услугу с началом в start.
// Время окончания фиксируется по текущей длительности услуги и больше
// не пересчитывается.
func (s *BookingService) Book(ctx context.Context, serviceID, userID int64, start time.Time) (*model.Appointment, error) {
	service, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if service == nil || !service.Active {
		return nil, schedule.ErrServiceUnavailable
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, schedule.ErrNotFound)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	loc := s.cal.Location()
	now := s.now().In(loc)
	start = start.In(loc)
	end := start.Add(service.Duration())

	if err := checkHorizon(midnight(start), midnight(now), settings.PlanningHorizonDays); err != nil {
		return nil, err
	}
	if start.Before(now) {
		return nil, schedule.ErrOutOfHorizon
	}

	// Бронь атомарно проверяет день/часы/пересечения и занимает интервал.
	// Проигравший гонку получает ErrSlotTaken ещё до обращения к БД.
	reservation, err := s.cal.Reserve(start, end)
	if err != nil {
		if errors.Is(err, schedule.ErrSlotTaken) {
			metrics.SlotConflicts.Inc()
		}
		return nil, err
	}

	appointment := &model.Appointment{
		UserID:    userID,
		ServiceID: serviceID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Status:    model.AppointmentStatusScheduled,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		reservation.Release()
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	reservation.Commit(appointment.ID)

	appointment.User = user
	appointment.Service = service
	metrics.BookingsCreated.Inc()

	s.logger.Info("Appointment booked",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("user_id", userID),
		zap.Int64("service_id", serviceID),
		zap.Time("start_time", appointment.StartTime),
	)

	if s.notifier != nil {
		s.notifier.AppointmentBooked(ctx, appointment)
	}

	return appointment, nil
}

// Cancel отменяет запись. Отмена терминальна: повторная отмена — ошибка,
// сама строка записи сохраняется.
func (s *BookingService) Cancel(ctx context.Context, appointmentID int64) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d: %w", appointmentID, schedule.ErrNotFound)
	}
	switch appointment.Status {
	case model.AppointmentStatusScheduled:
	case model.AppointmentStatusCompleted:
		return nil, schedule.ErrAlreadyCompleted
	default:
		return nil, schedule.ErrAlreadyCancelled
	}

	// Условный переход scheduled→cancelled: из двух одновременных отмен
	// вторая получает уже не-scheduled строку и ошибку.
	cancelled, err := s.appointments.UpdateStatus(ctx, appointmentID,
		model.AppointmentStatusScheduled, model.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	if !cancelled {
		return nil, s.terminalStatusErr(ctx, appointmentID)
	}

	appointment.Status = model.AppointmentStatusCancelled
	s.cal.Release(appointmentID)
	metrics.BookingsCancelled.Inc()

	s.logger.Info("Appointment cancelled",
		zap.Int64("appointment_id", appointmentID),
		zap.Int64("user_id", appointment.UserID),
	)

	if s.notifier != nil {
		s.notifier.AppointmentCancelled(ctx, appointment)
	}

	return appointment, nil
}

// terminalStatusErr подбирает ошибку по фактическому статусу записи,
// когда условное обновление не прошло из-за одновременного перехода.
func (s *BookingService) terminalStatusErr(ctx context.Context, id int64) error {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err == nil && appointment != nil && appointment.Status == model.AppointmentStatusCompleted {
		return schedule.ErrAlreadyCompleted
	}
	return schedule.ErrAlreadyCancelled
}

// Appointments возвращает записи по фильтру для админки
func (s *BookingService) Appointments(ctx context.Context, filter repository.AppointmentFilter) ([]*model.Appointment, error) {
	switch filter.Status {
	case "", model.AppointmentStatusScheduled, model.AppointmentStatusCancelled, model.AppointmentStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", schedule.ErrValidation, filter.Status)
	}
	return s.appointments.List(ctx, filter)
}

// UpcomingForUser возвращает предстоящие активные записи пользователя
func (s *BookingService) UpcomingForUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	return s.appointments.ListUpcomingByUser(ctx, userID, s.now().UTC())
}

// Appointment возвращает запись по ID
func (s *BookingService) Appointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d: %w", id, schedule.ErrNotFound)
	}
	return appointment, nil
}

// SetStatus обновляет статус записи из админки. Отмена через этот путь
// проходит те же проверки, что и Cancel.
func (s *BookingService) SetStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error) {
	switch status {
	case model.AppointmentStatusScheduled, model.AppointmentStatusCancelled, model.AppointmentStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", schedule.ErrValidation, status)
	}

	if status == model.AppointmentStatusCancelled {
		return s.Cancel(ctx, id)
	}

	appointment, err := s.Appointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == model.AppointmentStatusCancelled {
		// Отмена терминальна, воскрешать запись нельзя.
		return nil, schedule.ErrAlreadyCancelled
	}
	if appointment.Status == status {
		return appointment, nil
	}

	// Возврат завершённой будущей записи в расписание обязан заново занять
	// интервал в календаре: слот могли уже отдать другому клиенту.
	var reservation *schedule.Reservation
	if status == model.AppointmentStatusScheduled && appointment.EndTime.After(s.now().UTC()) {
		reservation, err = s.cal.Reserve(appointment.StartTime, appointment.EndTime)
		if err != nil {
			if errors.Is(err, schedule.ErrSlotTaken) {
				metrics.SlotConflicts.Inc()
			}
			return nil, err
		}
	}

	updated, err := s.appointments.UpdateStatus(ctx, id, appointment.Status, status)
	if err != nil {
		if reservation != nil {
			reservation.Release()
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	if !updated {
		if reservation != nil {
			reservation.Release()
		}
		return nil, s.terminalStatusErr(ctx, id)
	}
	if reservation != nil {
		reservation.Commit(id)
	}
	if status == model.AppointmentStatusCompleted {
		s.cal.Release(id)
	}
	appointment.Status = status

	s.logger.Info("Appointment status updated",
		zap.Int64("appointment_id", id),
		zap.String("status", string(status)),
	)

	return appointment, nil
}

// CompletePast помечает завершёнными активные записи, закончившиеся к
// текущему моменту. Вызывается фоновой задачей.
func (s *BookingService) CompletePast(ctx context.Context) (int64, error) {
	completed, err := s.appointments.CompletePast(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if completed > 0 {
		metrics.AppointmentsCompleted.Add(float64(completed))
		s.logger.Info("Past appointments completed", zap.Int64("count", completed))
	}
	return completed, nil
}
