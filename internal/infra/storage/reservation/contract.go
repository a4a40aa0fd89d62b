package reservation

import "github.com/m04kA/SMC-TimetableService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// rowsScanner курсор результата запроса (*sql.Rows)
type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}
