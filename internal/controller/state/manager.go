package state

import (
	"sync"
	"time"
)

// UserState представляет шаг пользователя в диалоге записи
type UserState string

const (
	StateNone            UserState = ""
	StateChoosingService UserState = "choosing_service"
	StateChoosingDate    UserState = "choosing_date"
	StateChoosingTime    UserState = "choosing_time"
	StateConfirming      UserState = "confirming"
)

// BookingDraft — черновик записи, который пользователь собирает по шагам:
// услуга, дата, время.
type BookingDraft struct {
	State           UserState
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Date            time.Time // полночь выбранного дня
	Start           time.Time // выбранное время начала
}

// Manager хранит черновики записей пользователей
type Manager struct {
	mu     sync.RWMutex
	drafts map[int64]*BookingDraft // telegramID -> черновик
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		drafts: make(map[int64]*BookingDraft),
	}
}

// GetState получает текущее состояние пользователя
func (m *Manager) GetState(telegramID int64) UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if draft, exists := m.drafts[telegramID]; exists {
		return draft.State
	}
	return StateNone
}

// Draft возвращает копию черновика пользователя
func (m *Manager) Draft(telegramID int64) (BookingDraft, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	draft, exists := m.drafts[telegramID]
	if !exists {
		return BookingDraft{}, false
	}
	return *draft, true
}

// SetDraft сохраняет черновик пользователя
func (m *Manager) SetDraft(telegramID int64, draft BookingDraft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[telegramID] = &draft
}

// Update меняет черновик функцией-модификатором, если он существует
func (m *Manager) Update(telegramID int64, fn func(*BookingDraft)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, exists := m.drafts[telegramID]
	if !exists {
		return false
	}
	fn(draft)
	return true
}

// Clear очищает состояние пользователя
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, telegramID)
}
