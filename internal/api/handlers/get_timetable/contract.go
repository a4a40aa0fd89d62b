package get_timetable

import (
	"context"

	getTimetable "github.com/m04kA/SMC-TimetableService/internal/usecase/get_timetable"
)

type GetTimetableUseCase interface {
	Execute(ctx context.Context, req *getTimetable.Request) (*getTimetable.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
