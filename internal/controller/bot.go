package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/callbacks"
	"github.com/iron-woodman/NailBot/internal/controller/handlers"
	"github.com/iron-woodman/NailBot/internal/controller/state"
	"github.com/iron-woodman/NailBot/internal/miniapp"
	"github.com/iron-woodman/NailBot/internal/schedule"
	"github.com/iron-woodman/NailBot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// Deps — сервисы и настройки, нужные контроллеру бота
type Deps struct {
	Users        *service.UserService
	Catalog      *service.CatalogService
	Availability *service.AvailabilityService
	Booking      *service.BookingService
	Calendar     *schedule.Calendar
	Tokens       *miniapp.AccessTokens
	AdminID      int64
	MiniappURL   string
	Contacts     string
	Logger       *zap.Logger
}

func NewBotController(botInstance *bot.Bot, deps Deps) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		deps.Users,
		deps.Catalog,
		deps.Booking,
		deps.Calendar,
		stateManager,
		deps.Tokens,
		deps.AdminID,
		deps.MiniappURL,
		deps.Contacts,
		deps.Logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		deps.Users,
		deps.Catalog,
		deps.Availability,
		deps.Booking,
		stateManager,
		deps.Calendar,
		deps.Contacts,
		deps.Logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          deps.Logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/services", bot.MatchTypeExact, c.handlers.HandleServices)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)

	// Обработчик текстовых сообщений вне команд
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "💅 Главное меню"},
		{Command: "services", Description: "📋 Услуги и цены"},
		{Command: "mybookings", Description: "📅 Мои записи"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
