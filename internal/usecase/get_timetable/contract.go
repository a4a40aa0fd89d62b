package get_timetable

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	// GetByDate получает все неотменённые брони на дату
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// BalanceRepository интерфейс источника снимков баланса
type BalanceRepository interface {
	// GetLatestByMemberIDs получает последний известный баланс по каждому участнику
	GetLatestByMemberIDs(ctx context.Context, memberIDs []int64) (map[int64]int64, error)
}

// MetricsRecorder приёмник метрик раскладки
type MetricsRecorder interface {
	ObserveBox(status string)
	ObserveSkipped(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopRecorder struct{}

func (noopRecorder) ObserveBox(string)     {}
func (noopRecorder) ObserveSkipped(string) {}
