package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/formatting"
	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// handleMyAppointments показывает предстоящие записи пользователя
func (h *Handler) handleMyAppointments(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	user, err := h.Users.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if user == nil {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"У вас пока нет записей.", MainMenuKeyboard())
		return
	}

	appointments, err := h.Booking.UpcomingForUser(ctx, user.ID)
	if err != nil {
		h.Logger.Error("Failed to load appointments", zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if len(appointments) == 0 {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"У вас пока нет записей.", MainMenuKeyboard())
		return
	}

	loc := h.Calendar.Location()
	var sb strings.Builder
	sb.WriteString("<b>Ваши записи:</b>\n\n")
	for _, appointment := range appointments {
		start := appointment.StartTime.In(loc)
		name := "услуга"
		if appointment.Service != nil {
			name = appointment.Service.Name
		}
		sb.WriteString(fmt.Sprintf("• %s — %s %s\n",
			name,
			formatting.FormatDate(start),
			formatting.FormatTime(start),
		))
	}

	editMessage(ctx, b, message.Chat.ID, message.ID, sb.String(), MainMenuKeyboard())
}

// handleCancelMenu показывает записи с кнопками отмены
func (h *Handler) handleCancelMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	user, err := h.Users.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		return
	}

	var appointments []*model.Appointment
	if user != nil {
		list, err := h.Booking.UpcomingForUser(ctx, user.ID)
		if err != nil {
			h.Logger.Error("Failed to load appointments", zap.Error(err))
			answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
			return
		}
		appointments = list
	}

	if len(appointments) == 0 {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"У вас нет активных записей для отмены.", MainMenuKeyboard())
		return
	}

	editMessage(ctx, b, message.Chat.ID, message.ID,
		"Выберите запись, которую хотите отменить:",
		appointmentsKeyboard(appointments, h.Calendar.Location()))
}

// handleCancelRequest просит подтвердить отмену конкретной записи
func (h *Handler) handleCancelRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	appointmentID, err := parseID(callback.Data)
	if err != nil {
		h.Logger.Error("Bad cancel callback", zap.String("data", callback.Data))
		return
	}

	appointment, err := h.Booking.Appointment(ctx, appointmentID)
	if err != nil {
		editMessage(ctx, b, message.Chat.ID, message.ID,
			"Запись не найдена.", MainMenuKeyboard())
		return
	}

	start := appointment.StartTime.In(h.Calendar.Location())
	editMessage(ctx, b, message.Chat.ID, message.ID,
		fmt.Sprintf("Отменить запись на %s %s?",
			formatting.FormatDate(start), formatting.FormatTime(start)),
		confirmCancelKeyboard(appointmentID))
}

// handleConfirmCancel отменяет запись
func (h *Handler) handleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	appointmentID, err := parseID(callback.Data)
	if err != nil {
		h.Logger.Error("Bad confirm cancel callback", zap.String("data", callback.Data))
		return
	}

	if _, err := h.Booking.Cancel(ctx, appointmentID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAlreadyCancelled):
			answerCallbackAlert(ctx, b, callback.ID, "Эта запись уже отменена.")
		case errors.Is(err, schedule.ErrAlreadyCompleted):
			answerCallbackAlert(ctx, b, callback.ID, "Эта запись уже завершена.")
		case errors.Is(err, schedule.ErrNotFound):
			answerCallbackAlert(ctx, b, callback.ID, "Запись не найдена.")
		default:
			h.Logger.Error("Failed to cancel appointment", zap.Error(err))
			answerCallbackAlert(ctx, b, callback.ID, "Произошла ошибка. Попробуйте позже.")
		}
		return
	}

	answerCallback(ctx, b, callback.ID, "Запись отменена")
	editMessage(ctx, b, message.Chat.ID, message.ID,
		"Ваша запись отменена. Будем рады видеть вас снова!", MainMenuKeyboard())
}

// handleBackToMain возвращает в главное меню
func (h *Handler) handleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	h.States.Clear(callback.From.ID)
	editMessage(ctx, b, message.Chat.ID, message.ID,
		"Главное меню. Чем могу помочь?", MainMenuKeyboard())
}

// handleContacts показывает контакты мастера
func (h *Handler) handleContacts(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	message := messageFromCallback(callback)
	if message == nil {
		return
	}

	editMessage(ctx, b, message.Chat.ID, message.ID, h.Contacts, MainMenuKeyboard())
}
