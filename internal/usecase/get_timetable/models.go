package get_timetable

import (
	"time"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/types"
)

// Request модель запроса расписания
type Request struct {
	Date time.Time // Дата расписания; нулевое значение - сегодня в часовом поясе площадки
}

// Response модель ответа: сетка, размещённые брони и пропущенные брони
type Response struct {
	Date    time.Time
	Grid    *Grid
	Boxes   []Box
	Skipped []SkippedReservation
}

// Grid геометрия сетки
type Grid struct {
	Config   domain.GridConfig
	Columns  []Column
	Rows     []Row
	WidthPx  float64 // полная ширина, включая колонку времени
	HeightPx float64 // полная высота, включая заголовок
}

// Column колонка отсека
type Column struct {
	Bay     int
	Label   string
	LeftPx  float64
	WidthPx float64
}

// Row строка часа
type Row struct {
	Hour     int    // порядковый час без свёртки (25 = 01:00 следующего дня)
	Label    string // "01:00"
	TopPx    float64
	HeightPx float64
}

// Placement положение брони на сетке
type Placement struct {
	StartTime types.TimeString
	EndTime   types.TimeString

	DurationHours   int
	DurationMinutes int

	TopPx    float64
	LeftPx   float64
	WidthPx  float64
	HeightPx float64

	Clipped bool // бронь обрезана по нижнему краю сетки
}

// Box размещённая бронь с классификацией и подсказкой
type Box struct {
	ReservationID int64
	Bay           int
	Placement

	Status     domain.BoxStatus
	Category   domain.Category
	MemberID   *int64
	MemberName string
	Balance    *int64

	HoverText  string
	DetailPath string // пусто для броней без участника - клик ничего не делает
}

// SkippedReservation бронь, которую не удалось разместить
type SkippedReservation struct {
	ReservationID int64
	Bay           int
	Reason        string
	Message       string
}
