package web

import (
	stderrors "errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"daily-log/internal/api"
	"daily-log/internal/domain"
	"daily-log/internal/errors"
	"daily-log/internal/services"
	"daily-log/internal/validation"
)

// chartSlugs maps URL path segments onto the numeric column they plot.
var chartSlugs = map[string]string{
	"screen-time":   domain.ColScreenTime,
	"study-time":    domain.ColStudyTime,
	"study-quality": domain.ColStudyQuality,
	"wake-up":       domain.ColMorningWakeUpHour,
}

type indexData struct {
	Today    string
	Recent   []domain.LogEntry
	Filtered []domain.LogEntry
	Summary  *services.Summary
	Corr     *services.CorrelationMatrix
	From     string
	To       string
	Query    template.URL

	Saved  string
	Error  string
	Notice string

	CSRFField template.HTML
	HasCharts bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session, notice := s.sessions.Get(r.Context(), w, r)
	data := s.buildIndexData(r, session)
	if notice != nil {
		s.logger.Warn("table load degraded", "error", notice)
		data.Notice = "Stored log could not be read; starting with an empty table."
	}
	data.Saved = r.URL.Query().Get("saved")
	s.render(w, http.StatusOK, "index.html", data)
}

// buildIndexData assembles everything the main page shows: the recent rows,
// the date-filtered view and its aggregates.
func (s *Server) buildIndexData(r *http.Request, session api.API) indexData {
	from, to := s.dateWindow(r, session)

	filtered := session.EntriesBetween(from, to)
	data := indexData{
		Today:     time.Now().Format(domain.DateLayout),
		Recent:    session.Recent(),
		Filtered:  filtered,
		From:      from.Format(domain.DateLayout),
		To:        to.Format(domain.DateLayout),
		CSRFField: csrf.TemplateField(r),
		HasCharts: len(filtered) >= 2,
	}
	data.Query = template.URL(url.Values{
		"from": []string{data.From},
		"to":   []string{data.To},
	}.Encode())
	if len(filtered) > 0 {
		data.Summary = session.Summary(filtered)
		data.Corr = session.Correlation(filtered)
	}
	return data
}

// dateWindow resolves the from/to query parameters, falling back to the
// table's own date bounds, or to today when the table is empty.
func (s *Server) dateWindow(r *http.Request, session api.API) (time.Time, time.Time) {
	today := time.Now()
	from, to, ok := session.Bounds()
	if !ok {
		from, to = today, today
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := time.Parse(domain.DateLayout, raw); err == nil {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := time.Parse(domain.DateLayout, raw); err == nil {
			to = parsed
		}
	}
	return from, to
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessions.Get(r.Context(), w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(domain.DateLayout, r.PostFormValue("date"))
	if err != nil {
		data := s.buildIndexData(r, session)
		data.Error = "Date is required and must look like 2006-01-02."
		s.render(w, http.StatusUnprocessableEntity, "index.html", data)
		return
	}

	input := api.NewEntryInput{
		Date:           date,
		ScreenHour:     formInt(r, "screen_hour"),
		ScreenMinute:   formInt(r, "screen_minute"),
		StudyHour:      formInt(r, "study_hour"),
		StudyMinute:    formInt(r, "study_minute"),
		WakeHour:       formInt(r, "wake_hour"),
		WakeMinute:     formInt(r, "wake_minute"),
		StudyQuality:   formInt(r, "study_quality"),
		OrdinaryDay:    formFlag(r, "ordinary_day"),
		Meditation:     formFlag(r, "meditation"),
		MorningStudy:   formFlag(r, "morning_study"),
		MorningPhone:   formFlag(r, "morning_phone"),
		LunchPhone:     formFlag(r, "lunch_phone"),
		DinnerPhone:    formFlag(r, "dinner_phone"),
		Running:        formFlag(r, "running"),
		P:              formFlag(r, "p"),
		Notes:          r.PostFormValue("notes"),
		PlanStrategies: r.PostFormValue("plan_strategies"),
	}

	entry, err := session.AddEntry(r.Context(), input)
	if err != nil {
		s.logger.Warn("entry rejected", "date", r.PostFormValue("date"), "error", err)
		data := s.buildIndexData(r, session)
		data.Error = userMessage(err)
		s.render(w, addEntryStatus(err), "index.html", data)
		return
	}

	s.logger.Info("entry saved", "date", entry.Date.Format(domain.DateLayout))
	http.Redirect(w, r, "/?saved="+url.QueryEscape(entry.Date.Format(domain.DateLayout)), http.StatusSeeOther)
}

// addEntryStatus picks the response status for a rejected submission. Bad
// input is the client's fault; everything else means the push failed.
func addEntryStatus(err error) int {
	if validation.IsValidationError(err) ||
		errors.IsErrorType(err, errors.ErrorTypeValidation) ||
		errors.IsErrorType(err, errors.ErrorTypeInvalidInput) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func userMessage(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessions.Get(r.Context(), w, r)

	slug, isPNG := strings.CutSuffix(r.PathValue("column"), ".png")
	if !isPNG {
		http.NotFound(w, r)
		return
	}
	column, ok := chartSlugs[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}

	from, to := s.dateWindow(r, session)
	points := session.Series(session.EntriesBetween(from, to), column)
	if len(points) < 2 {
		http.Error(w, "not enough data points to plot", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := renderSeriesPNG(w, column, points); err != nil {
		s.logger.Error("chart render failed", "column", column, "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessions.Get(r.Context(), w, r)

	payload, err := session.ExportCSV()
	if err != nil {
		http.Error(w, errors.GetUserMessage(err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="daily-log.csv"`)
	w.Write(payload)
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.PostFormValue(name))
	return n
}

// formFlag treats the checkbox convention: a present value means Yes,
// an absent one means No.
func formFlag(r *http.Request, name string) domain.Flag {
	if r.PostFormValue(name) != "" {
		return domain.Yes
	}
	return domain.No
}
