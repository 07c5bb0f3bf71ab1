package handlers

import (
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/state"
	"github.com/iron-woodman/NailBot/internal/miniapp"
	"github.com/iron-woodman/NailBot/internal/schedule"
	"github.com/iron-woodman/NailBot/internal/service"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	catalogService *service.CatalogService
	bookingService *service.BookingService
	calendar       *schedule.Calendar
	stateManager   *state.Manager
	tokens         *miniapp.AccessTokens
	adminID        int64
	miniappURL     string
	contacts       string
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	catalogService *service.CatalogService,
	bookingService *service.BookingService,
	cal *schedule.Calendar,
	stateManager *state.Manager,
	tokens *miniapp.AccessTokens,
	adminID int64,
	miniappURL string,
	contacts string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:    userService,
		catalogService: catalogService,
		bookingService: bookingService,
		calendar:       cal,
		stateManager:   stateManager,
		tokens:         tokens,
		adminID:        adminID,
		miniappURL:     miniappURL,
		contacts:       contacts,
		logger:         logger,
	}
}
