// Package servicetest содержит in-memory заглушки хранилищ для тестов
// сервисного слоя и HTTP-обработчиков. Заглушки потокобезопасны: тесты
// гонки бронирований вызывают Create из многих горутин.
package servicetest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iron-woodman/NailBot/internal/model"
	"github.com/iron-woodman/NailBot/internal/repository"
)

// Stores — полный набор заглушек
type Stores struct {
	Users        *UserStore
	Services     *ServiceStore
	Appointments *AppointmentStore
	WorkDays     *WorkDayStore
	Holidays     *HolidayStore
	Settings     *SettingsStore
}

func New() *Stores {
	return &Stores{
		Users:        NewUserStore(),
		Services:     NewServiceStore(),
		Appointments: NewAppointmentStore(),
		WorkDays:     NewWorkDayStore(),
		Holidays:     NewHolidayStore(),
		Settings:     NewSettingsStore(),
	}
}

type UserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]*model.User)}
}

func (f *UserStore) Upsert(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.TelegramID == user.TelegramID {
			existing.Username = user.Username
			existing.FullName = user.FullName
			*user = *existing
			return nil
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *UserStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.TelegramID == telegramID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

type ServiceStore struct {
	mu       sync.Mutex
	nextID   int64
	services map[int64]*model.Service
}

func NewServiceStore() *ServiceStore {
	return &ServiceStore{services: make(map[int64]*model.Service)}
}

func (f *ServiceStore) Create(_ context.Context, service *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	service.ID = f.nextID
	service.CreatedAt = time.Now()
	clone := *service
	f.services[service.ID] = &clone
	return nil
}

func (f *ServiceStore) GetByID(_ context.Context, id int64) (*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	service, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	clone := *service
	return &clone, nil
}

func (f *ServiceStore) GetByName(_ context.Context, name string) (*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, service := range f.services {
		if service.Name == name {
			clone := *service
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *ServiceStore) GetAll(_ context.Context) ([]*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Service
	for id := int64(1); id <= f.nextID; id++ {
		if service, ok := f.services[id]; ok {
			clone := *service
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *ServiceStore) GetActive(ctx context.Context) ([]*model.Service, error) {
	all, _ := f.GetAll(ctx)
	var out []*model.Service
	for _, service := range all {
		if service.Active {
			out = append(out, service)
		}
	}
	return out, nil
}

func (f *ServiceStore) Update(_ context.Context, service *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[service.ID]; !ok {
		return errors.New("service not found")
	}
	clone := *service
	f.services[service.ID] = &clone
	return nil
}

func (f *ServiceStore) Deactivate(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	service, ok := f.services[id]
	if !ok {
		return errors.New("service not found")
	}
	service.Active = false
	return nil
}

type AppointmentStore struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]*model.Appointment

	// CreateErr — подставная ошибка БД для теста отката брони
	CreateErr error
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{appointments: make(map[int64]*model.Appointment)}
}

func (f *AppointmentStore) Create(_ context.Context, appointment *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.nextID++
	appointment.ID = f.nextID
	appointment.CreatedAt = time.Now()
	clone := *appointment
	f.appointments[appointment.ID] = &clone
	return nil
}

func (f *AppointmentStore) GetByID(_ context.Context, id int64) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (f *AppointmentStore) List(_ context.Context, filter repository.AppointmentFilter) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for id := int64(1); id <= f.nextID; id++ {
		appointment, ok := f.appointments[id]
		if !ok {
			continue
		}
		if filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && appointment.StartTime.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && !appointment.StartTime.Before(*filter.DateTo) {
			continue
		}
		clone := *appointment
		out = append(out, &clone)
	}
	return out, nil
}

func (f *AppointmentStore) ListUpcomingByUser(_ context.Context, userID int64, now time.Time) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for id := int64(1); id <= f.nextID; id++ {
		appointment, ok := f.appointments[id]
		if !ok {
			continue
		}
		if appointment.UserID != userID || appointment.Status != model.AppointmentStatusScheduled {
			continue
		}
		if appointment.StartTime.Before(now) {
			continue
		}
		clone := *appointment
		out = append(out, &clone)
	}
	return out, nil
}

func (f *AppointmentStore) ListActiveFrom(_ context.Context, from time.Time) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for id := int64(1); id <= f.nextID; id++ {
		appointment, ok := f.appointments[id]
		if !ok {
			continue
		}
		if appointment.Status != model.AppointmentStatusScheduled || !appointment.EndTime.After(from) {
			continue
		}
		clone := *appointment
		out = append(out, &clone)
	}
	return out, nil
}

func (f *AppointmentStore) UpdateStatus(_ context.Context, id int64, from, to model.AppointmentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[id]
	if !ok || appointment.Status != from {
		return false, nil
	}
	appointment.Status = to
	return true, nil
}

func (f *AppointmentStore) CompletePast(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var completed int64
	for _, appointment := range f.appointments {
		if appointment.Status == model.AppointmentStatusScheduled && !appointment.EndTime.After(now) {
			appointment.Status = model.AppointmentStatusCompleted
			completed++
		}
	}
	return completed, nil
}

// WorkDayStore заполнен расписанием по умолчанию: Пн–Пт 09:00–18:00
type WorkDayStore struct {
	mu   sync.Mutex
	days [7]*model.WorkDay
}

func NewWorkDayStore() *WorkDayStore {
	store := &WorkDayStore{}
	for weekday := 0; weekday < 7; weekday++ {
		store.days[weekday] = &model.WorkDay{
			ID:          int64(weekday + 1),
			Weekday:     weekday,
			StartMinute: 9 * 60,
			EndMinute:   18 * 60,
			IsWorking:   weekday < 5,
		}
	}
	return store
}

func (f *WorkDayStore) GetAll(_ context.Context) ([]*model.WorkDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.WorkDay, 0, 7)
	for _, day := range f.days {
		clone := *day
		out = append(out, &clone)
	}
	return out, nil
}

func (f *WorkDayStore) GetByWeekday(_ context.Context, weekday int) (*model.WorkDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if weekday < 0 || weekday > 6 {
		return nil, nil
	}
	clone := *f.days[weekday]
	return &clone, nil
}

func (f *WorkDayStore) Update(_ context.Context, day *model.WorkDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *day
	f.days[day.Weekday] = &clone
	return nil
}

type HolidayStore struct {
	mu       sync.Mutex
	nextID   int64
	holidays map[int64]*model.Holiday
}

func NewHolidayStore() *HolidayStore {
	return &HolidayStore{holidays: make(map[int64]*model.Holiday)}
}

func (f *HolidayStore) Create(_ context.Context, holiday *model.Holiday) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	holiday.ID = f.nextID
	clone := *holiday
	f.holidays[holiday.ID] = &clone
	return nil
}

func (f *HolidayStore) GetByID(_ context.Context, id int64) (*model.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	holiday, ok := f.holidays[id]
	if !ok {
		return nil, nil
	}
	clone := *holiday
	return &clone, nil
}

func (f *HolidayStore) GetByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, holiday := range f.holidays {
		if holiday.Date.Equal(date) {
			clone := *holiday
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *HolidayStore) GetAll(_ context.Context) ([]*model.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Holiday
	for id := int64(1); id <= f.nextID; id++ {
		if holiday, ok := f.holidays[id]; ok {
			clone := *holiday
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *HolidayStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.holidays[id]; !ok {
		return errors.New("holiday not found")
	}
	delete(f.holidays, id)
	return nil
}

// SettingsStore заполнен настройками по умолчанию; Current можно
// подменять напрямую до первого обращения
type SettingsStore struct {
	mu      sync.Mutex
	Current *model.Settings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		Current: &model.Settings{
			ID:                  1,
			AdminID:             1000,
			PlanningHorizonDays: 30,
			Timezone:            "UTC",
		},
	}
}

func (f *SettingsStore) Get(_ context.Context) (*model.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Current == nil {
		return nil, nil
	}
	clone := *f.Current
	return &clone, nil
}

func (f *SettingsStore) Upsert(_ context.Context, settings *model.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *settings
	f.Current = &clone
	return nil
}
