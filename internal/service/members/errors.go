package members

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBalanceNotFound возвращается, когда у участника нет записей в журнале баланса
	ErrBalanceNotFound = errors.New("member balance not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
