package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/app"
	"github.com/iron-woodman/NailBot/internal/config"
	"github.com/iron-woodman/NailBot/internal/controller"
	"github.com/iron-woodman/NailBot/internal/miniapp"
	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/repository"
	"github.com/iron-woodman/NailBot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting nail bot",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Подключаемся к базе
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	holidayRepo := repository.NewHolidayRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	// Настройки: создаём строку при первом запуске
	if err := seedSettings(ctx, settingsRepo, cfg); err != nil {
		logger.Fatal("Failed to seed settings", zap.Error(err))
	}

	// Календарь мастера: расписание, выходные и активные записи из БД
	cal, err := service.LoadCalendar(ctx, settingsRepo, scheduleRepo, holidayRepo, appointmentRepo, logger)
	if err != nil {
		logger.Fatal("Failed to load calendar", zap.Error(err))
	}

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	catalogService := service.NewCatalogService(serviceRepo, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, holidayRepo, cal, logger)
	settingsService := service.NewSettingsService(settingsRepo, cal, logger)
	availabilityService := service.NewAvailabilityService(serviceRepo, settingsRepo, cal, logger)
	bookingService := service.NewBookingService(userRepo, serviceRepo, appointmentRepo, settingsRepo, cal, logger)

	// Telegram бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bookingService.SetNotifier(controller.NewAdminNotifier(b, cal, cfg.AdminID, logger))

	tokens := miniapp.NewAccessTokens(time.Hour)

	botController := controller.NewBotController(b, controller.Deps{
		Users:        userService,
		Catalog:      catalogService,
		Availability: availabilityService,
		Booking:      bookingService,
		Calendar:     cal,
		Tokens:       tokens,
		AdminID:      cfg.AdminID,
		MiniappURL:   cfg.MiniappURL,
		Contacts:     cfg.Contacts,
		Logger:       logger,
	})
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register bot handlers", zap.Error(err))
	}

	// HTTP API админ-панели
	apiServer := miniapp.NewServer(miniapp.Config{
		Catalog:  catalogService,
		Schedule: scheduleService,
		Booking:  bookingService,
		Settings: settingsService,
		Tokens:   tokens,
		BotToken: cfg.TelegramToken,
		AdminID:  cfg.AdminID,
		Logger:   logger,
	})
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: apiServer.Routes(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
			cancel()
		}
	}()

	// Фоновое закрытие прошедших записей
	scheduler := app.NewScheduler(bookingService, time.Hour, logger)
	scheduler.Start(ctx)

	// Блокируется до отмены контекста
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Bye")
}

// seedSettings создаёт строку настроек при первом запуске
func seedSettings(ctx context.Context, repo *repository.SettingsRepository, cfg *config.Config) error {
	current, err := repo.Get(ctx)
	if err != nil {
		return err
	}
	if current != nil {
		return nil
	}

	return repo.Upsert(ctx, &model.Settings{
		ID:                  1,
		AdminID:             cfg.AdminID,
		PlanningHorizonDays: 30,
		Timezone:            cfg.Timezone,
	})
}
