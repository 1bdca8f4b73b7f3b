package devbackend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/alovak/cardentry-playground/internal/cardnum"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"
)

// CreateRequest is the body of POST /api/cards.
type CreateRequest struct {
	Name        string  `json:"name" validate:"required,max=50"`
	CardNumber  string  `json:"cardNumber" validate:"required,digits,max=19"`
	CreditLimit float64 `json:"creditLimit" validate:"gt=0"`
}

// Card is a record on the wire. Money goes out as JSON numbers.
type Card struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	CardNumber  string      `json:"cardNumber"`
	CreditLimit json.Number `json:"creditLimit"`
	Balance     json.Number `json:"balance"`
}

func toWire(c models.CardRecord) Card {
	return Card{
		ID:          c.ID,
		Name:        c.Name,
		CardNumber:  c.CardNumber,
		CreditLimit: json.Number(c.CreditLimit.String()),
		Balance:     json.Number(c.Balance.String()),
	}
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// API serves the card collection resource.
type API struct {
	repo     *Repository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewAPI(repo *Repository, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	// card numbers are ASCII digits only
	if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return cardnum.IsDigits(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return &API{
		repo:     repo,
		validate: v,
		logger:   logger.With(slog.String("app", "dev-backend")),
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/api/cards", func(r chi.Router) {
		r.Get("/", a.listCards)
		r.Post("/", a.createCard)
	})
}

// Seed stores records as if they had been posted.
func (a *API) Seed(records ...models.CardRecord) error {
	for _, rec := range records {
		if _, err := a.repo.CreateCard(rec); err != nil {
			return err
		}
	}
	return nil
}

func (a *API) listCards(w http.ResponseWriter, r *http.Request) {
	cards := a.repo.ListCards()
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, toWire(c))
	}
	render.JSON(w, r, out)
}

func (a *API) createCard(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "failed to decode request"})
		return
	}

	if err := a.validate.Struct(req); err != nil {
		resp := ErrorResponse{Message: "invalid request"}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			resp.Field = verrs[0].Field()
		}
		a.logger.Info("invalid card", slog.String("err", err.Error()))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp)
		return
	}

	card, err := a.repo.CreateCard(models.CardRecord{
		Name:        req.Name,
		CardNumber:  req.CardNumber,
		CreditLimit: decimal.NewFromFloat(req.CreditLimit),
		Balance:     decimal.Zero,
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, ErrorResponse{Message: "card number already exists", Field: "cardNumber"})
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Message: err.Error()})
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toWire(card))
}
