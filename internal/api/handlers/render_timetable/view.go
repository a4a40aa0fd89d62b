package render_timetable

import (
	"strconv"
	"strings"

	"github.com/m04kA/SMC-TimetableService/internal/domain"
	getTimetable "github.com/m04kA/SMC-TimetableService/internal/usecase/get_timetable"
)

// pageView данные шаблона страницы
type pageView struct {
	Date           string
	WidthPx        float64
	HeightPx       float64
	HeaderHeightPx float64
	Columns        []getTimetable.Column
	Rows           []getTimetable.Row
	Boxes          []boxView
	Skipped        []getTimetable.SkippedReservation
}

type boxView struct {
	Status     string
	Clipped    bool
	TopPx      float64
	LeftPx     float64
	WidthPx    float64
	HeightPx   float64
	Label      string
	HoverText  string
	DetailPath string
}

func toPageView(resp *getTimetable.Response) pageView {
	boxes := make([]boxView, len(resp.Boxes))
	for i, b := range resp.Boxes {
		boxes[i] = boxView{
			Status:     string(b.Status),
			Clipped:    b.Clipped,
			TopPx:      b.TopPx,
			LeftPx:     b.LeftPx,
			WidthPx:    b.WidthPx,
			HeightPx:   b.HeightPx,
			Label:      boxLabel(b.HoverText),
			HoverText:  b.HoverText,
			DetailPath: b.DetailPath,
		}
	}

	return pageView{
		Date:           resp.Date.Format(domain.DateFormat),
		WidthPx:        resp.Grid.WidthPx,
		HeightPx:       resp.Grid.HeightPx,
		HeaderHeightPx: resp.Grid.Config.HeaderHeightPx,
		Columns:        resp.Grid.Columns,
		Rows:           resp.Grid.Rows,
		Boxes:          boxes,
		Skipped:        resp.Skipped,
	}
}

// boxLabel видимая подпись блока: имя и интервал из подсказки
func boxLabel(hoverText string) string {
	lines := strings.SplitN(hoverText, "\n", 3)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	return strings.Join(lines, "\n")
}

// px форматирует пиксели для CSS: 130 -> "130px", 42.5 -> "42.5px"
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
