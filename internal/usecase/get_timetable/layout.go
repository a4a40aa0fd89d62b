package get_timetable

import (
	"fmt"
	"math"
	"strconv"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	"github.com/m04kA/SMC-TimetableService/pkg/types"
)

// BuildGrid строит геометрию сетки: колонка на каждый отсек и строка на каждый час
// Подпись часа сворачивается по модулю 24, а порядковый номер строки - нет,
// поэтому рабочий день через полночь не ломает порядок строк
func BuildGrid(cfg domain.GridConfig) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	columns := make([]Column, cfg.BayCount)
	for i := range columns {
		bay := i + 1
		columns[i] = Column{
			Bay:     bay,
			Label:   strconv.Itoa(bay),
			LeftPx:  bayLeftPx(cfg, bay),
			WidthPx: cfg.BayColumnWidthPx,
		}
	}

	rows := make([]Row, cfg.HourSpan)
	for i := range rows {
		hour := cfg.StartHour + i
		rows[i] = Row{
			Hour:     hour,
			Label:    fmt.Sprintf("%02d:00", hour%24),
			TopPx:    cfg.HeaderHeightPx + float64(i)*cfg.RowHeightPx,
			HeightPx: cfg.RowHeightPx,
		}
	}

	return &Grid{
		Config:   cfg,
		Columns:  columns,
		Rows:     rows,
		WidthPx:  cfg.TimeColumnWidthPx + float64(cfg.BayCount)*cfg.BayColumnWidthPx,
		HeightPx: cfg.BodyBottomPx(),
	}, nil
}

func bayLeftPx(cfg domain.GridConfig, bay int) float64 {
	return cfg.TimeColumnWidthPx + float64(bay-1)*cfg.BayColumnWidthPx
}

// ReservationDuration вычисляет длительность брони вычитанием с заёмом по основаниям 60/24
//
// Конец раньше начала (по часам, или по минутам внутри того же часа) означает переход
// через полночь, поэтому результат никогда не отрицателен:
//   - 22:30 → 23:15 = 0ч 45м
//   - 23:30 → 00:15 = 0ч 45м
//   - 23:00 → 24:00 = 1ч 0м
//   - 10:00 → 10:00 = 0ч 0м
func ReservationDuration(start, end types.TimeString) (hours, minutes int) {
	hours = end.Hour() - start.Hour()
	if end.Hour() < start.Hour() {
		hours += 24
	}

	minutes = end.Minute() - start.Minute()
	if minutes < 0 {
		minutes += 60
		hours--
	}

	// Тот же час, но минуты конца меньше: бронь тоже идёт через полночь
	if hours < 0 {
		hours += 24
	}

	return hours, minutes
}

// PlaceReservation вычисляет положение брони на сетке
//
// Правила:
//   - час начала раньше StartHour относится к следующим суткам сетки (смещение +24);
//   - бронь, начинающаяся за пределами отображаемых часов, не размещается (ErrOutsideWindow);
//   - бронь, выходящая за нижний край сетки, обрезается по нему (Clipped);
//   - высота не меньше MinBoxHeightPx; если минимальная высота не помещается до нижнего края,
//     блок сдвигается вверх, чтобы остаться внутри сетки;
//   - пересечения броней в одном отсеке не разрешаются - блоки рисуются поверх друг друга.
func PlaceReservation(grid *Grid, r *domain.Reservation) (*Placement, error) {
	cfg := grid.Config

	if r.Bay < 1 || r.Bay > cfg.BayCount {
		return nil, fmt.Errorf("%w: bay=%d, expected [1, %d]", ErrBayOutOfRange, r.Bay, cfg.BayCount)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidTime, err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidTime, err)
	}

	hourOffset := start.Hour() - cfg.StartHour
	if hourOffset < 0 {
		hourOffset += 24
	}
	if hourOffset >= cfg.HourSpan {
		return nil, fmt.Errorf("%w: start=%s, displayed %02d:00-%02d:00",
			ErrOutsideWindow, start, cfg.StartHour, cfg.EndHour()%24)
	}

	top := cfg.HeaderHeightPx +
		float64(hourOffset)*cfg.RowHeightPx +
		float64(start.Minute())/60*cfg.RowHeightPx

	hours, minutes := ReservationDuration(start, end)
	height := (float64(hours) + float64(minutes)/60) * cfg.RowHeightPx

	bottom := cfg.BodyBottomPx()
	clipped := false
	if top+height > bottom {
		height = bottom - top
		clipped = true
	}

	height = math.Max(cfg.MinBoxHeightPx, height)
	if top+height > bottom {
		top = math.Max(cfg.HeaderHeightPx, bottom-height)
	}

	return &Placement{
		StartTime:       start,
		EndTime:         end,
		DurationHours:   hours,
		DurationMinutes: minutes,
		TopPx:           top,
		LeftPx:          bayLeftPx(cfg, r.Bay),
		WidthPx:         cfg.BayColumnWidthPx - cfg.BoxGapPx,
		HeightPx:        height,
		Clipped:         clipped,
	}, nil
}
