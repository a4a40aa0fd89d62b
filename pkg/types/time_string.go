package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeString возвращается, когда строку нельзя разобрать как время суток
var ErrInvalidTimeString = errors.New("types: invalid time string")

// EndOfDayHour час значения "24:00" - конец суток, который допускает тип TIME в PostgreSQL
const EndOfDayHour = 24

// TimeString время суток (часы и минуты) без привязки к дате
// Поддерживает форматы "HH:MM" и "HH:MM:SS" (так PostgreSQL отдаёт тип TIME).
// "24:00" допускается как конец суток: это 00:00 следующего дня, Minutes() = 1440
type TimeString struct {
	hour   int
	minute int
}

// NewTimeStringFromString разбирает строку вида "07:30" или "07:30:00"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, err := parsePart(parts[0], EndOfDayHour)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q: hour: %v", ErrInvalidTimeString, s, err)
	}
	minute, err := parsePart(parts[1], 59)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q: minute: %v", ErrInvalidTimeString, s, err)
	}
	second := 0
	if len(parts) == 3 {
		// Секунды проверяем, но не храним - сетка работает с точностью до минуты
		if second, err = parsePart(parts[2], 59); err != nil {
			return TimeString{}, fmt.Errorf("%w: %q: second: %v", ErrInvalidTimeString, s, err)
		}
	}
	if hour == EndOfDayHour && (minute != 0 || second != 0) {
		return TimeString{}, fmt.Errorf("%w: %q: only 24:00 is allowed with hour 24", ErrInvalidTimeString, s)
	}

	return TimeString{hour: hour, minute: minute}, nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке. Только для констант и тестов
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parsePart(part string, max int) (int, error) {
	if len(part) == 0 || len(part) > 2 {
		return 0, fmt.Errorf("expected 1-2 digits, got %q", part)
	}
	v, err := strconv.Atoi(part)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > max {
		return 0, fmt.Errorf("value %d out of range [0, %d]", v, max)
	}
	return v, nil
}

// Hour возвращает часы (0-23, либо 24 для "24:00")
func (t TimeString) Hour() int {
	return t.hour
}

// Minute возвращает минуты (0-59)
func (t TimeString) Minute() int {
	return t.minute
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.hour*60 + t.minute
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// String форматирует время как "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
