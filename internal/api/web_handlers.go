package api

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lehmann314159/wordtrainer/internal/i18n"
	"github.com/lehmann314159/wordtrainer/internal/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// WebHandler handles HTML template rendering
type WebHandler struct {
	trainer   *Trainer
	tr        *i18n.I18n
	templates map[services.View]*template.Template
}

// NewWebHandler creates a new WebHandler with parsed templates
func NewWebHandler(trainer *Trainer, tr *i18n.I18n) (*WebHandler, error) {
	funcMap := template.FuncMap{
		"t": tr.Get,
	}

	// Layout and the shared card partial go into every page
	base, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS,
		"templates/layout.html",
		"templates/card.html",
	)
	if err != nil {
		return nil, err
	}

	pages := map[services.View]string{
		services.ViewDashboard:  "dashboard.html",
		services.ViewStudy:      "study.html",
		services.ViewTest:       "test.html",
		services.ViewCompletion: "completion.html",
	}

	templates := make(map[services.View]*template.Template)

	for view, page := range pages {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		tmpl, err = tmpl.ParseFS(templatesFS, "templates/"+page)
		if err != nil {
			return nil, err
		}
		templates[view] = tmpl
	}

	return &WebHandler{
		trainer:   trainer,
		tr:        tr,
		templates: templates,
	}, nil
}

// PageData is passed to every page template
type PageData struct {
	Lang  string
	Title string
	State *services.Snapshot
}

// Index renders whichever view is active
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	state := h.trainer.State()

	data := PageData{
		Lang:  string(h.tr.Lang()),
		Title: h.tr.Get("app.title"),
		State: state,
	}
	h.render(w, state.View, data)
}

// SelectDay handles POST /days/{day}
func (h *WebHandler) SelectDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		h.renderError(w, "Invalid day", http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, services.Command{Type: services.CmdSelectDay, Day: day})
}

// PrevCard handles POST /study/prev
func (h *WebHandler) PrevCard(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.Command{Type: services.CmdPrevCard})
}

// NextCard handles POST /study/next
func (h *WebHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.Command{Type: services.CmdNextCard})
}

// StartTest handles POST /test/start
func (h *WebHandler) StartTest(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.Command{Type: services.CmdStartTest})
}

// RevealAnswer handles POST /test/reveal
func (h *WebHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.Command{Type: services.CmdRevealAnswer})
}

// SubmitResult handles POST /test/result
func (h *WebHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	remembered, err := strconv.ParseBool(r.FormValue("remembered"))
	if err != nil {
		h.renderError(w, "Invalid result", http.StatusBadRequest)
		return
	}
	h.dispatch(w, r, services.Command{Type: services.CmdSubmitResult, Remembered: remembered})
}

// GoHome handles POST /home
func (h *WebHandler) GoHome(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.Command{Type: services.CmdGoHome})
}

// dispatch applies cmd with the form's session id and redirects home
func (h *WebHandler) dispatch(w http.ResponseWriter, r *http.Request, cmd services.Command) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	cmd.SessionID = r.FormValue("session_id")

	if _, err := h.trainer.Dispatch(r.Context(), cmd); err != nil {
		h.renderError(w, err.Error(), statusFor(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render renders a full page with layout
func (h *WebHandler) render(w http.ResponseWriter, view services.View, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, ok := h.templates[view]
	if !ok {
		http.Error(w, "Template not found: "+string(view), http.StatusInternalServerError)
		return
	}

	err := tmpl.ExecuteTemplate(w, "layout.html", data)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// renderError renders an error page
func (h *WebHandler) renderError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte("<html><body><h1>Error</h1><p>" + template.HTMLEscapeString(message) +
		"</p><a href='/'>" + template.HTMLEscapeString(h.tr.Get("nav.home")) + "</a></body></html>"))
}
