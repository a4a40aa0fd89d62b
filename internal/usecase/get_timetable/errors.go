package get_timetable

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReservation возвращается, когда бронь нельзя разместить на сетке.
	// Такая бронь пропускается, остальная раскладка продолжается
	ErrInvalidReservation = errors.New("invalid reservation")

	// ErrBayOutOfRange номер отсека вне [1, BayCount]
	ErrBayOutOfRange = fmt.Errorf("%w: bay out of range", ErrInvalidReservation)

	// ErrInvalidTime время начала или конца не разбирается
	ErrInvalidTime = fmt.Errorf("%w: invalid time", ErrInvalidReservation)

	// ErrOutsideWindow бронь начинается за пределами отображаемых часов
	ErrOutsideWindow = fmt.Errorf("%w: starts outside displayed hours", ErrInvalidReservation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// Причины пропуска брони (метки метрик и поле ответа)
const (
	SkipReasonBayOutOfRange = "bay_out_of_range"
	SkipReasonInvalidTime   = "invalid_time"
	SkipReasonOutsideWindow = "outside_window"
	SkipReasonInvalid       = "invalid"
)

// skipReason возвращает код причины пропуска для ошибки раскладки
func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrBayOutOfRange):
		return SkipReasonBayOutOfRange
	case errors.Is(err, ErrInvalidTime):
		return SkipReasonInvalidTime
	case errors.Is(err, ErrOutsideWindow):
		return SkipReasonOutsideWindow
	default:
		return SkipReasonInvalid
	}
}
