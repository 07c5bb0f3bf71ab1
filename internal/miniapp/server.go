package miniapp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/metrics"
	"github.com/iron-woodman/NailBot/internal/service"
)

// Server — HTTP API административной панели (Telegram MiniApp).
// Все /api-маршруты требуют авторизации администратора.
type Server struct {
	catalog      *service.CatalogService
	scheduleSvc  *service.ScheduleService
	booking      *service.BookingService
	settings     *service.SettingsService
	tokens       *AccessTokens
	botToken     string
	adminID      int64
	logger       *zap.Logger
}

type Config struct {
	Catalog  *service.CatalogService
	Schedule *service.ScheduleService
	Booking  *service.BookingService
	Settings *service.SettingsService
	Tokens   *AccessTokens
	BotToken string
	AdminID  int64
	Logger   *zap.Logger
}

func NewServer(cfg Config) *Server {
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewAccessTokens(time.Hour)
	}
	return &Server{
		catalog:     cfg.Catalog,
		scheduleSvc: cfg.Schedule,
		booking:     cfg.Booking,
		settings:    cfg.Settings,
		tokens:      tokens,
		botToken:    cfg.BotToken,
		adminID:     cfg.AdminID,
		logger:      cfg.Logger,
	}
}

// Tokens возвращает хранилище токенов доступа, чтобы бот мог их выдавать
func (s *Server) Tokens() *AccessTokens {
	return s.tokens
}

// Routes собирает маршрутизатор
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Route("/services", func(r chi.Router) {
			r.Get("/", s.listServices)
			r.Post("/", s.createService)
			r.Put("/{id}", s.updateService)
			r.Delete("/{id}", s.deleteService)
		})

		r.Get("/work-schedule", s.getWorkSchedule)
		r.Put("/work-schedule/{weekday}", s.updateWorkSchedule)

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", s.listHolidays)
			r.Post("/", s.createHoliday)
			r.Delete("/{id}", s.deleteHoliday)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", s.listAppointments)
			r.Put("/{id}/status", s.updateAppointmentStatus)
			r.Delete("/{id}", s.cancelAppointment)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.getSettings)
			r.Put("/", s.updateSettings)
		})
	})

	return r
}
