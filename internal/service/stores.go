package service

import (
	"context"
	"time"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/repository"
)

// Интерфейсы хранилищ, которые реализуют pgx-репозитории.
// Сервисы зависят от них, а не от конкретных структур, чтобы логику
// бронирования можно было тестировать без БД.

type UserStore interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

type ServiceStore interface {
	Create(ctx context.Context, service *model.Service) error
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	GetByName(ctx context.Context, name string) (*model.Service, error)
	GetAll(ctx context.Context) ([]*model.Service, error)
	GetActive(ctx context.Context) ([]*model.Service, error)
	Update(ctx context.Context, service *model.Service) error
	Deactivate(ctx context.Context, id int64) error
}

type AppointmentStore interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context, filter repository.AppointmentFilter) ([]*model.Appointment, error)
	ListUpcomingByUser(ctx context.Context, userID int64, now time.Time) ([]*model.Appointment, error)
	ListActiveFrom(ctx context.Context, from time.Time) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (bool, error)
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

type WorkDayStore interface {
	GetAll(ctx context.Context) ([]*model.WorkDay, error)
	GetByWeekday(ctx context.Context, weekday int) (*model.WorkDay, error)
	Update(ctx context.Context, day *model.WorkDay) error
}

type HolidayStore interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	GetByID(ctx context.Context, id int64) (*model.Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	GetAll(ctx context.Context) ([]*model.Holiday, error)
	Delete(ctx context.Context, id int64) error
}

type SettingsStore interface {
	Get(ctx context.Context) (*model.Settings, error)
	Upsert(ctx context.Context, settings *model.Settings) error
}
