package cardentry

import (
	"errors"
	"net/http"

	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"
)

// API exposes the controller as an HTML page and as a JSON event API.
type API struct {
	ctrl   *Controller
	logger *slog.Logger
}

func NewAPI(ctrl *Controller, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		ctrl:   ctrl,
		logger: logger,
	}
}

// FieldEvent is the body of change and blur events.
type FieldEvent struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SubmitResponse tells how a submission ended together with the new view.
type SubmitResponse struct {
	Outcome Outcome     `json:"outcome"`
	View    models.View `json:"view"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Get("/", a.page)
	r.Post("/", a.submitForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", a.view)
		r.Post("/cards/refresh", a.refresh)
		r.Route("/form", func(r chi.Router) {
			r.Post("/change", a.fieldEvent(a.ctrl.OnChange))
			r.Post("/blur", a.fieldEvent(a.ctrl.OnBlur))
			r.Post("/submit", a.submit)
		})
	})
}

func (a *API) page(w http.ResponseWriter, r *http.Request) {
	if err := RenderPage(w, a.ctrl.View()); err != nil {
		a.logger.Error("rendering page", slog.String("err", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// submitForm handles the classic form post: every field is fed through
// OnChange before the submission runs.
func (a *API) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, f := range Fields {
		a.ctrl.OnChange(f, r.PostForm.Get(string(f)))
	}

	if _, err := a.ctrl.Submit(r.Context()); err != nil && !errors.Is(err, ErrSubmitInProgress) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *API) view(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, a.ctrl.View())
}

func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	// a failed refresh is part of the view, not of the response status
	_ = a.ctrl.Refresh(r.Context())
	render.JSON(w, r, a.ctrl.View())
}

func (a *API) fieldEvent(handle func(Field, string) models.FieldError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev FieldEvent
		if err := render.DecodeJSON(r.Body, &ev); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: "failed to decode request"})
			return
		}
		field, err := ParseField(ev.Field)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, r, handle(field, ev.Value))
	}
}

func (a *API) submit(w http.ResponseWriter, r *http.Request) {
	outcome, err := a.ctrl.Submit(r.Context())
	if err != nil {
		if errors.Is(err, ErrSubmitInProgress) {
			render.Status(r, http.StatusConflict)
		} else {
			render.Status(r, http.StatusInternalServerError)
		}
		render.JSON(w, r, errorResponse{Error: err.Error()})
		return
	}
	render.JSON(w, r, SubmitResponse{Outcome: outcome, View: a.ctrl.View()})
}
