package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/callbacks"
	"github.com/iron-woodman/NailBot/internal/controller/formatting"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	fullName := strings.TrimSpace(from.FirstName + " " + from.LastName)

	user, err := h.userService.RegisterOrUpdate(ctx, from.ID, from.Username, fullName)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	h.stateManager.Clear(from.ID)

	welcomeText := fmt.Sprintf(
		"Привет, %s! 💅\n\n"+
			"Я бот для записи на маникюр. Здесь можно выбрать услугу, "+
			"посмотреть свободное время и записаться в пару нажатий.\n\n"+
			"Чем могу помочь?",
		user.FullName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        welcomeText,
		ReplyMarkup: callbacks.MainMenuKeyboard(),
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "Справка по командам:\n\n" +
		"/start - Главное меню\n" +
		"/services - Список услуг и цен\n" +
		"/mybookings - Мои записи\n" +
		"/help - Показать эту справку\n\n" +
		"Для записи нажмите «Записаться» в главном меню."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleServices обрабатывает команду /services
func (h *Handlers) HandleServices(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	services, err := h.catalogService.ActiveServices(ctx)
	if err != nil {
		h.logger.Error("Failed to load services", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Произошла ошибка. Попробуйте позже.",
		})
		return
	}

	if len(services) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Список услуг пока пуст.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("<b>Наши услуги:</b>\n\n")
	for _, svc := range services {
		sb.WriteString(fmt.Sprintf("💅 <b>%s</b>\n", svc.Name))
		if svc.Description != "" {
			sb.WriteString(svc.Description + "\n")
		}
		sb.WriteString(fmt.Sprintf("⏱ %s · %s\n\n",
			formatting.FormatDuration(svc.DurationMinutes),
			formatting.FormatPriceShort(svc.Price),
		))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: callbacks.MainMenuKeyboard(),
	})
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, update.Message.From.ID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Error(err))
		return
	}

	text := "У вас пока нет записей."
	if user != nil {
		appointments, err := h.bookingService.UpcomingForUser(ctx, user.ID)
		if err != nil {
			h.logger.Error("Failed to load appointments", zap.Error(err))
			text = "Произошла ошибка. Попробуйте позже."
		} else if len(appointments) > 0 {
			var sb strings.Builder
			sb.WriteString("<b>Ваши записи:</b>\n\n")
			for _, appointment := range appointments {
				name := "услуга"
				if appointment.Service != nil {
					name = appointment.Service.Name
				}
				start := appointment.StartTime.In(h.calendar.Location())
				sb.WriteString(fmt.Sprintf("• %s — %s\n",
					name, formatting.FormatDateTime(start)))
			}
			text = sb.String()
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: callbacks.MainMenuKeyboard(),
	})
}

// HandleAdmin выдаёт администратору ссылку на панель управления
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.From.ID != h.adminID {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Эта команда доступна только администратору.",
		})
		return
	}

	if h.miniappURL == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Панель управления не настроена.",
		})
		return
	}

	token := h.tokens.Issue()
	link := fmt.Sprintf("%s?token=%s", h.miniappURL, token)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      fmt.Sprintf("Панель управления:\n<a href=\"%s\">Открыть</a>\n\nСсылка действует один час.", link),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleTextMessage обрабатывает произвольный текст вне команд
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "Я понимаю только кнопки и команды. Выберите действие в меню:",
		ReplyMarkup: callbacks.MainMenuKeyboard(),
	})
}
