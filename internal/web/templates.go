package web

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"time"

	"daily-log/internal/hours"
)

//go:embed templates/*.html
var templateFS embed.FS

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"fmtDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"fmtHours": func(r hours.Result) string {
			return r.String()
		},
		"fmtClock": func(r hours.Result) string {
			if r.Normalized {
				return hours.Clock(r.Value)
			}
			return r.Original
		},
		"fmtFloat": func(v float64) string {
			if math.IsNaN(v) {
				return "n/a"
			}
			return fmt.Sprintf("%.2f", v)
		},
		"fmtCorr": func(v float64) string {
			if math.IsNaN(v) {
				return ""
			}
			return fmt.Sprintf("%.2f", v)
		},
		"corrColor": corrColor,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// corrColor maps a correlation coefficient onto a blue-white-red scale
// for the heatmap cells. NaN cells render neutral grey.
func corrColor(v float64) template.CSS {
	if math.IsNaN(v) {
		return "background-color: #eeeeee"
	}
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	var r, g, b int
	if v >= 0 {
		// white toward red
		r = 255
		g = int(255 * (1 - v))
		b = int(255 * (1 - v))
	} else {
		// white toward blue
		r = int(255 * (1 + v))
		g = int(255 * (1 + v))
		b = 255
	}
	return template.CSS(fmt.Sprintf("background-color: rgb(%d, %d, %d)", r, g, b))
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
	}
}
