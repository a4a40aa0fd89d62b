package render_timetable

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/m04kA/SMC-TimetableService/internal/api/handlers"
	getTimetableHandler "github.com/m04kA/SMC-TimetableService/internal/api/handlers/get_timetable"
	"github.com/m04kA/SMC-TimetableService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

//go:embed templates/timetable.html
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.New("timetable.html").
		Funcs(template.FuncMap{"px": px}).
		ParseFS(templatesFS, "templates/timetable.html"),
)

type Handler struct {
	useCase GetTimetableUseCase
	logger  Logger
}

func NewHandler(useCase GetTimetableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /timetable
// Query params: date (optional, YYYY-MM-DD; по умолчанию сегодня)
// Геометрия считается на сервере один раз, страница только рисует готовые координаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	useCaseReq, err := getTimetableHandler.ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /timetable (html) - Invalid date format: date=%q, error=%v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("GET /timetable (html) - Failed to build timetable: date=%q, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	// Рендерим в буфер: при ошибке шаблона заголовки ещё не отправлены
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, toPageView(result)); err != nil {
		h.logger.Error("GET /timetable (html) - Failed to render page: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /timetable (html) - Page rendered: date=%s, boxes=%d", result.Date.Format(domain.DateFormat), len(result.Boxes))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
