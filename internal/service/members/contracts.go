package members

import "context"

// BalanceRepository интерфейс источника снимков баланса
type BalanceRepository interface {
	GetLatestByMemberID(ctx context.Context, memberID int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
