package schedule

import "errors"

// Ошибки домена расписания. Сервисы возвращают их напрямую либо
// обёрнутыми через fmt.Errorf с %w.
var (
	ErrServiceUnavailable = errors.New("service does not exist or is not active")
	ErrOutOfHorizon       = errors.New("date is in the past or beyond the planning horizon")
	ErrClosedDay          = errors.New("day is not working")
	ErrOutsideHours       = errors.New("time is outside business hours")
	ErrSlotTaken          = errors.New("slot is already taken")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyCancelled   = errors.New("appointment is already cancelled")
	ErrAlreadyCompleted   = errors.New("appointment is already completed")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
)

// Kind — категория ошибки для внешнего API.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindPolicy     Kind = "policy"
	KindInternal   Kind = "internal"
)

// KindOf определяет категорию ошибки:
// validation — неверный ввод, not_found — неизвестный объект,
// conflict — занятый слот/повторная отмена/дубликат,
// policy — закрытый день, нерабочее время, горизонт планирования.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrServiceUnavailable):
		return KindNotFound
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrClosedDay), errors.Is(err, ErrOutsideHours), errors.Is(err, ErrOutOfHorizon):
		return KindPolicy
	default:
		return KindInternal
	}
}
