package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService *service.BookingService
	interval       time.Duration
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookingService *service.BookingService, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runCompletionTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runCompletionTask периодически закрывает прошедшие записи
func (s *Scheduler) runCompletionTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.completePast(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completePast(ctx)
		case <-s.stopChan:
			s.logger.Info("Completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Completion task cancelled")
			return
		}
	}
}

// completePast помечает завершёнными записи, время которых прошло
func (s *Scheduler) completePast(ctx context.Context) {
	if _, err := s.bookingService.CompletePast(ctx); err != nil {
		s.logger.Error("Failed to complete past appointments", zap.Error(err))
	}
}
