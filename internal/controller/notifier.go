package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/controller/formatting"
	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// AdminNotifier шлёт администратору сообщения о новых и отменённых записях
type AdminNotifier struct {
	bot      *bot.Bot
	calendar *schedule.Calendar
	adminID  int64
	logger   *zap.Logger
}

func NewAdminNotifier(b *bot.Bot, cal *schedule.Calendar, adminID int64, logger *zap.Logger) *AdminNotifier {
	return &AdminNotifier{
		bot:      b,
		calendar: cal,
		adminID:  adminID,
		logger:   logger,
	}
}

// AppointmentBooked уведомляет администратора о новой записи
func (n *AdminNotifier) AppointmentBooked(ctx context.Context, appointment *model.Appointment) {
	n.send(ctx, fmt.Sprintf("🆕 Новая запись!\n\n%s", n.describe(appointment)))
}

// AppointmentCancelled уведомляет администратора об отмене
func (n *AdminNotifier) AppointmentCancelled(ctx context.Context, appointment *model.Appointment) {
	n.send(ctx, fmt.Sprintf("❌ Запись отменена.\n\n%s", n.describe(appointment)))
}

func (n *AdminNotifier) describe(appointment *model.Appointment) string {
	clientName := "клиент"
	clientContact := ""
	if appointment.User != nil {
		clientName = appointment.User.FullName
		if appointment.User.Username != "" {
			clientContact = " (@" + appointment.User.Username + ")"
		}
	}

	serviceName := "услуга"
	if appointment.Service != nil {
		serviceName = appointment.Service.Name
	}

	start := appointment.StartTime.In(n.calendar.Location())
	return fmt.Sprintf("Клиент: %s%s\nУслуга: %s\nВремя: %s",
		clientName, clientContact, serviceName, formatting.FormatDateTime(start))
}

func (n *AdminNotifier) send(ctx context.Context, text string) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.adminID,
		Text:   text,
	})
	if err != nil {
		n.logger.Error("Failed to notify admin", zap.Error(err))
	}
}
