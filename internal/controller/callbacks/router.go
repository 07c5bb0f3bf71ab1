package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/state"
	"github.com/iron-woodman/NailBot/internal/schedule"
	"github.com/iron-woodman/NailBot/internal/service"
)

// Форматы callback data

const (
	BackToMain      = "back_to_main_menu"
	BookAppointment = "book_appointment"
	MyAppointments  = "my_appointments"
	CancelMenu      = "cancel_appointment"
	Contacts        = "contacts"
	ConfirmBooking  = "confirm_booking"
	Noop            = "noop"

	ChooseService = "service:"        // service:123
	CalendarNav   = "cal_nav:"        // cal_nav:2026:9
	ChooseDate    = "date:"           // date:2026-09-07
	ChooseTime    = "time:"           // time:10:00
	CancelBooking = "cancel:"         // cancel:123
	ConfirmCancel = "confirm_cancel:" // confirm_cancel:123
)

// Handler обрабатывает нажатия inline-кнопок
type Handler struct {
	Users        *service.UserService
	Catalog      *service.CatalogService
	Availability *service.AvailabilityService
	Booking      *service.BookingService
	States       *state.Manager
	Calendar     *schedule.Calendar
	Contacts     string
	Logger       *zap.Logger
}

func NewHandler(
	users *service.UserService,
	catalog *service.CatalogService,
	availability *service.AvailabilityService,
	booking *service.BookingService,
	states *state.Manager,
	cal *schedule.Calendar,
	contacts string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        users,
		Catalog:      catalog,
		Availability: availability,
		Booking:      booking,
		States:       states,
		Calendar:     cal,
		Contacts:     contacts,
		Logger:       logger,
	}
}

// HandleCallbackQuery — главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	data := callback.Data

	h.Logger.Info("Callback received",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
	)

	switch {
	case data == Noop:
		answerCallback(ctx, b, callback.ID, "")
	case data == BackToMain:
		h.handleBackToMain(ctx, b, callback)
	case data == Contacts:
		h.handleContacts(ctx, b, callback)

	// запись на услугу
	case data == BookAppointment:
		h.handleBookStart(ctx, b, callback)
	case strings.HasPrefix(data, ChooseService):
		h.handleServiceChosen(ctx, b, callback)
	case strings.HasPrefix(data, CalendarNav):
		h.handleCalendarNav(ctx, b, callback)
	case strings.HasPrefix(data, ChooseDate):
		h.handleDateChosen(ctx, b, callback)
	case strings.HasPrefix(data, ChooseTime):
		h.handleTimeChosen(ctx, b, callback)
	case data == ConfirmBooking:
		h.handleConfirmBooking(ctx, b, callback)

	// управление своими записями
	case data == MyAppointments:
		h.handleMyAppointments(ctx, b, callback)
	case data == CancelMenu:
		h.handleCancelMenu(ctx, b, callback)
	case strings.HasPrefix(data, CancelBooking):
		h.handleCancelRequest(ctx, b, callback)
	case strings.HasPrefix(data, ConfirmCancel):
		h.handleConfirmCancel(ctx, b, callback)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		answerCallback(ctx, b, callback.ID, "")
	}
}
