package callbacks

import (
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/iron-woodman/NailBot/internal/controller/formatting"
	"github.com/iron-woodman/NailBot/internal/controller/keyboard"
	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/schedule"
)

// MainMenuKeyboard — клавиатура главного меню
func MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("Записаться", BookAppointment),
			keyboard.Button("Мои записи", MyAppointments),
		).
		Row(
			keyboard.Button("Отменить запись", CancelMenu),
			keyboard.Button("Контакты", Contacts),
		).
		Build()
}

// servicesKeyboard — список активных услуг
func servicesKeyboard(services []*model.Service) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, service := range services {
		label := fmt.Sprintf("%s (%s) — %s",
			service.Name,
			formatting.FormatDuration(service.DurationMinutes),
			formatting.FormatPriceShort(service.Price),
		)
		b.Row(keyboard.Button(label, fmt.Sprintf("%s%d", ChooseService, service.ID)))
	}
	b.Row(keyboard.Button("Назад в главное меню", BackToMain))
	return b.Build()
}

// calendarKeyboard — календарь месяца; кликабельны только доступные даты
func calendarKeyboard(year int, month time.Month, available map[string]bool, loc *time.Location) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()

	b.Row(keyboard.Button(
		fmt.Sprintf("%s %d", formatting.MonthName(month), year), Noop,
	))
	b.Row(
		keyboard.Button("Пн", Noop),
		keyboard.Button("Вт", Noop),
		keyboard.Button("Ср", Noop),
		keyboard.Button("Чт", Noop),
		keyboard.Button("Пт", Noop),
		keyboard.Button("Сб", Noop),
		keyboard.Button("Вс", Noop),
	)

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()

	row := make([]models.InlineKeyboardButton, 0, 7)
	for i := 0; i < schedule.WeekdayIndex(firstDay); i++ {
		row = append(row, keyboard.Button(" ", Noop))
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if available[schedule.DateKey(date)] {
			row = append(row, keyboard.Button(
				fmt.Sprintf("%d", day),
				ChooseDate+schedule.DateKey(date),
			))
		} else {
			row = append(row, keyboard.Button(fmt.Sprintf("%d", day), Noop))
		}

		if len(row) == 7 {
			b.Row(row...)
			row = make([]models.InlineKeyboardButton, 0, 7)
		}
	}
	for len(row) > 0 && len(row) < 7 {
		row = append(row, keyboard.Button(" ", Noop))
	}
	if len(row) == 7 {
		b.Row(row...)
	}

	// навигация по месяцам
	prev := firstDay.AddDate(0, -1, 0)
	next := firstDay.AddDate(0, 1, 0)
	b.Row(
		keyboard.Button("<", fmt.Sprintf("%s%d:%d", CalendarNav, prev.Year(), int(prev.Month()))),
		keyboard.Button("Меню", BackToMain),
		keyboard.Button(">", fmt.Sprintf("%s%d:%d", CalendarNav, next.Year(), int(next.Month()))),
	)

	return b.Build()
}

// timeSlotsKeyboard — свободные времена начала, по 3 в ряд
func timeSlotsKeyboard(slots []time.Time) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 3)
	for _, slot := range slots {
		clock := formatting.FormatTime(slot)
		row = append(row, keyboard.Button(clock, ChooseTime+clock))
		if len(row) == 3 {
			b.Row(row...)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		b.Row(row...)
	}
	b.Row(keyboard.Button("Назад в главное меню", BackToMain))
	return b.Build()
}

// bookedKeyboard — клавиатура после успешной записи
func bookedKeyboard(calendarLink string) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.URLButton("Добавить в Google Calendar", calendarLink)).
		Row(keyboard.Button("В главное меню", BackToMain)).
		Build()
}

// confirmationKeyboard — подтверждение записи
func confirmationKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("Подтвердить", ConfirmBooking),
			keyboard.Button("Отмена", BackToMain),
		).
		Build()
}

// appointmentsKeyboard — список записей с кнопками отмены
func appointmentsKeyboard(appointments []*model.Appointment, loc *time.Location) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, appointment := range appointments {
		start := appointment.StartTime.In(loc)
		b.Row(keyboard.Button(
			fmt.Sprintf("Отменить запись на %s", start.Format("02.01 15:04")),
			fmt.Sprintf("%s%d", CancelBooking, appointment.ID),
		))
	}
	b.Row(keyboard.Button("Назад в главное меню", BackToMain))
	return b.Build()
}

// confirmCancelKeyboard — подтверждение отмены записи
func confirmCancelKeyboard(appointmentID int64) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("Да, отменить", fmt.Sprintf("%s%d", ConfirmCancel, appointmentID)),
			keyboard.Button("Нет, вернуться", CancelMenu),
		).
		Build()
}
