package get_timetable

import (
	"time"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	getTimetable "github.com/m04kA/SMC-TimetableService/internal/usecase/get_timetable"
)

// TimetableResponse HTTP response model
type TimetableResponse struct {
	Date    string            `json:"date"`
	Grid    GridResponse      `json:"grid"`
	Boxes   []BoxResponse     `json:"boxes"`
	Skipped []SkippedResponse `json:"skipped"`
}

// GridResponse геометрия сетки
type GridResponse struct {
	BayCount       int              `json:"bayCount"`
	StartHour      int              `json:"startHour"`
	HourSpan       int              `json:"hourSpan"`
	WidthPx        float64          `json:"widthPx"`
	HeightPx       float64          `json:"heightPx"`
	HeaderHeightPx float64          `json:"headerHeightPx"`
	Columns        []ColumnResponse `json:"columns"`
	Rows           []RowResponse    `json:"rows"`
}

// ColumnResponse колонка отсека
type ColumnResponse struct {
	Bay     int     `json:"bay"`
	Label   string  `json:"label"`
	LeftPx  float64 `json:"leftPx"`
	WidthPx float64 `json:"widthPx"`
}

// RowResponse строка часа
type RowResponse struct {
	Hour     int     `json:"hour"`
	Label    string  `json:"label"`
	TopPx    float64 `json:"topPx"`
	HeightPx float64 `json:"heightPx"`
}

// BoxResponse размещённая бронь
type BoxResponse struct {
	ReservationID   int64   `json:"reservationId"`
	Bay             int     `json:"bay"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	TopPx           float64 `json:"topPx"`
	LeftPx          float64 `json:"leftPx"`
	WidthPx         float64 `json:"widthPx"`
	HeightPx        float64 `json:"heightPx"`
	Clipped         bool    `json:"clipped,omitempty"`
	Status          string  `json:"status"`
	Category        string  `json:"category"`
	MemberID        *int64  `json:"memberId,omitempty"`
	MemberName      string  `json:"memberName,omitempty"`
	Balance         *int64  `json:"balance,omitempty"`
	HoverText       string  `json:"hoverText"`
	DetailPath      string  `json:"detailPath,omitempty"`
}

// SkippedResponse бронь, которую не удалось разместить
type SkippedResponse struct {
	ReservationID int64  `json:"reservationId"`
	Bay           int    `json:"bay"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
}

// ToUseCaseRequest создает запрос use case из query параметра date
// Пустая дата - расписание на сегодня
func ToUseCaseRequest(dateStr string) (*getTimetable.Request, error) {
	if dateStr == "" {
		return &getTimetable.Request{}, nil
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getTimetable.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimetable.Response) *TimetableResponse {
	cfg := resp.Grid.Config

	columns := make([]ColumnResponse, len(resp.Grid.Columns))
	for i, c := range resp.Grid.Columns {
		columns[i] = ColumnResponse{Bay: c.Bay, Label: c.Label, LeftPx: c.LeftPx, WidthPx: c.WidthPx}
	}

	rows := make([]RowResponse, len(resp.Grid.Rows))
	for i, r := range resp.Grid.Rows {
		rows[i] = RowResponse{Hour: r.Hour, Label: r.Label, TopPx: r.TopPx, HeightPx: r.HeightPx}
	}

	boxes := make([]BoxResponse, len(resp.Boxes))
	for i, b := range resp.Boxes {
		boxes[i] = BoxResponse{
			ReservationID:   b.ReservationID,
			Bay:             b.Bay,
			StartTime:       b.StartTime.String(),
			EndTime:         b.EndTime.String(),
			DurationMinutes: b.DurationHours*60 + b.DurationMinutes,
			TopPx:           b.TopPx,
			LeftPx:          b.LeftPx,
			WidthPx:         b.WidthPx,
			HeightPx:        b.HeightPx,
			Clipped:         b.Clipped,
			Status:          string(b.Status),
			Category:        string(b.Category),
			MemberID:        b.MemberID,
			MemberName:      b.MemberName,
			Balance:         b.Balance,
			HoverText:       b.HoverText,
			DetailPath:      b.DetailPath,
		}
	}

	skipped := make([]SkippedResponse, len(resp.Skipped))
	for i, s := range resp.Skipped {
		skipped[i] = SkippedResponse{
			ReservationID: s.ReservationID,
			Bay:           s.Bay,
			Reason:        s.Reason,
			Message:       s.Message,
		}
	}

	return &TimetableResponse{
		Date: resp.Date.Format(domain.DateFormat),
		Grid: GridResponse{
			BayCount:       cfg.BayCount,
			StartHour:      cfg.StartHour,
			HourSpan:       cfg.HourSpan,
			WidthPx:        resp.Grid.WidthPx,
			HeightPx:       resp.Grid.HeightPx,
			HeaderHeightPx: cfg.HeaderHeightPx,
			Columns:        columns,
			Rows:           rows,
		},
		Boxes:   boxes,
		Skipped: skipped,
	}
}
