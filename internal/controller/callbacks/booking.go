package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/formatting"
	"github.com/iron-woodman/NailBot/internal/controller/state"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// handleBookStart начинает процесс записи: показывает список услуг
func (h *Handler) handleBookStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	services, err := h.Catalog.ActiveServices(ctx)
	if err != nil {
		h.Logger.Error("Failed to load services", zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if len(services) == 0 {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"К сожалению, на данный момент нет доступных услуг для записи.", MainMenuKeyboard())
		return
	}

	h.States.SetDraft(callback.From.ID, state.BookingDraft{State: state.StateChoosingService})

	editMessage(ctx, b, message.Chat.ID, message.ID,
		"Выберите услугу:", servicesKeyboard(services))
}

// handleServiceChosen сохраняет услугу в черновик и показывает календарь
func (h *Handler) handleServiceChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	serviceID, err := parseID(callback.Data)
	if err != nil {
		h.Logger.Error("Bad service callback", zap.String("data", callback.Data))
		return
	}

	service, err := h.Catalog.Service(ctx, serviceID)
	if err != nil {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"Выбранная услуга не найдена. Пожалуйста, попробуйте еще раз.", MainMenuKeyboard())
		return
	}

	h.States.SetDraft(callback.From.ID, state.BookingDraft{
		State:           state.StateChoosingDate,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
	})

	loc := h.Calendar.Location()
	now := time.Now().In(loc)
	markup, err := h.monthKeyboard(ctx, now.Year(), now.Month())
	if err != nil {
		h.Logger.Error("Failed to build calendar", zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	editMessage(ctx, b, message.Chat.ID, message.ID,
		fmt.Sprintf("Вы выбрали услугу: %s.\n\nТеперь выберите дату:", service.Name), markup)
}

// handleCalendarNav переключает месяц календаря
func (h *Handler) handleCalendarNav(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	parts := strings.Split(strings.TrimPrefix(callback.Data, CalendarNav), ":")
	if len(parts) != 2 {
		return
	}
	year, errYear := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		return
	}

	markup, err := h.monthKeyboard(ctx, year, time.Month(month))
	if err != nil {
		h.Logger.Error("Failed to build calendar", zap.Error(err))
		return
	}

	editMessage(ctx, b, message.Chat.ID, message.ID, "Выберите дату:", markup)
}

// monthKeyboard строит календарь месяца с доступными датами
func (h *Handler) monthKeyboard(ctx context.Context, year int, month time.Month) (*models.InlineKeyboardMarkup, error) {
	dates, err := h.Availability.AvailableDates(ctx)
	if err != nil {
		return nil, err
	}

	available := make(map[string]bool, len(dates))
	for _, date := range dates {
		available[schedule.DateKey(date)] = true
	}
	return calendarKeyboard(year, month, available, h.Calendar.Location()), nil
}

// handleDateChosen сохраняет дату и показывает свободные слоты
func (h *Handler) handleDateChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	draft, ok := h.States.Draft(callback.From.ID)
	if !ok || draft.ServiceID == 0 {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"Произошла ошибка. Пожалуйста, начните заново.", MainMenuKeyboard())
		return
	}

	loc := h.Calendar.Location()
	date, err := time.ParseInLocation("2006-01-02", strings.TrimPrefix(callback.Data, ChooseDate), loc)
	if err != nil {
		h.Logger.Error("Bad date callback", zap.String("data", callback.Data))
		return
	}

	slots, err := h.Availability.AvailableSlots(ctx, draft.ServiceID, date)
	if err != nil {
		h.Logger.Warn("Slots unavailable", zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "Эта дата недоступна для записи.")
		return
	}
	if len(slots) == 0 {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"К сожалению, на выбранную дату нет свободного времени. Пожалуйста, выберите другую дату.",
			mustMarkup(h.monthKeyboard(ctx, date.Year(), date.Month())))
		return
	}

	draft.State = state.StateChoosingTime
	draft.Date = date
	h.States.SetDraft(callback.From.ID, draft)

	editMessage(ctx, b, message.Chat.ID, message.ID,
		fmt.Sprintf("Вы выбрали дату: %s.\n\nТеперь выберите время:", formatting.FormatDate(date)),
		timeSlotsKeyboard(slots))
}

func mustMarkup(markup *models.InlineKeyboardMarkup, err error) *models.InlineKeyboardMarkup {
	if err != nil {
		return MainMenuKeyboard()
	}
	return markup
}

// handleTimeChosen сохраняет время и просит подтвердить запись
func (h *Handler) handleTimeChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	draft, ok := h.States.Draft(callback.From.ID)
	if !ok || draft.Date.IsZero() {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"Произошла ошибка. Пожалуйста, начните заново.", MainMenuKeyboard())
		return
	}

	minute, err := schedule.ParseClock(strings.TrimPrefix(callback.Data, ChooseTime))
	if err != nil {
		h.Logger.Error("Bad time callback", zap.String("data", callback.Data))
		return
	}

	draft.State = state.StateConfirming
	draft.Start = draft.Date.Add(time.Duration(minute) * time.Minute)
	h.States.SetDraft(callback.From.ID, draft)

	editMessage(ctx, b, message.Chat.ID, message.ID,
		fmt.Sprintf(
			"<b>Подтвердите вашу запись:</b>\n\n"+
				"<b>Услуга:</b> %s\n"+
				"<b>Дата:</b> %s\n"+
				"<b>Время:</b> %s\n\n"+
				"Все верно?",
			draft.ServiceName,
			formatting.FormatDate(draft.Start),
			formatting.FormatTime(draft.Start),
		),
		confirmationKeyboard())
}

// handleConfirmBooking создаёт запись и присылает ссылку на Google Calendar
func (h *Handler) handleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	draft, ok := h.States.Draft(callback.From.ID)
	if !ok || draft.Start.IsZero() {
		answerCallback(ctx, b, callback.ID, "")
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"Произошла ошибка. Пожалуйста, начните заново.", MainMenuKeyboard())
		return
	}

	user, err := h.Users.GetByTelegramID(ctx, callback.From.ID)
	if err == nil && user == nil {
		fullName := strings.TrimSpace(callback.From.FirstName + " " + callback.From.LastName)
		user, err = h.Users.RegisterOrUpdate(ctx, callback.From.ID, callback.From.Username, fullName)
	}
	if err != nil {
		h.Logger.Error("Failed to resolve user", zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	appointment, err := h.Booking.Book(ctx, draft.ServiceID, user.ID, draft.Start)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotTaken):
			answerCallbackAlert(ctx, b, callback.ID, "Это время уже занято. Пожалуйста, выберите другое.")
		case errors.Is(err, schedule.ErrOutOfHorizon), errors.Is(err, schedule.ErrClosedDay), errors.Is(err, schedule.ErrOutsideHours):
			answerCallbackAlert(ctx, b, callback.ID, "Это время больше недоступно для записи.")
		default:
			h.Logger.Error("Failed to book appointment", zap.Error(err))
			answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		}
		return
	}

	answerCallback(ctx, b, callback.ID, "Запись подтверждена!")
	h.States.Clear(callback.From.ID)

	calendarLink := formatting.GoogleCalendarLink(
		draft.ServiceName,
		appointment.StartTime,
		appointment.EndTime,
		"Запись на услугу",
		h.Contacts,
	)

	editMessage(ctx, b, message.Chat.ID, message.ID,
		fmt.Sprintf(
			"Отлично! Ваша запись на услугу <b>«%s»</b> успешно создана.\n\n"+
				"<b>Дата:</b> %s\n"+
				"<b>Время:</b> %s\n\n"+
				"Мы будем ждать вас!",
			draft.ServiceName,
			formatting.FormatDate(draft.Start),
			formatting.FormatTime(draft.Start),
		),
		bookedKeyboard(calendarLink))
}
