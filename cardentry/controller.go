package cardentry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/alovak/cardentry-playground/internal/cardnum"
	"golang.org/x/exp/slog"
)

// FetchFailedMessage is shown when the card list cannot be loaded.
const FetchFailedMessage = "Failed to fetch cards. Please try again later."

// ErrSubmitInProgress is returned by Submit while another submission is in flight.
var ErrSubmitInProgress = errors.New("submission already in progress")

// Backend is the remote card collection.
type Backend interface {
	List(ctx context.Context) ([]models.CardRecord, error)
	Create(ctx context.Context, card models.CreateCard) error
}

// State of the submission flow.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// Outcome is how a submission ended.
type Outcome string

const (
	OutcomeInvalid  Outcome = "invalid"
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Controller owns the form state, the card list and the submission flow.
// The mutex is never held across a backend call.
type Controller struct {
	backend  Backend
	logger   *slog.Logger
	currency string

	mu     sync.Mutex
	draft  models.DraftInput
	errs   models.FieldErrors
	reqErr *models.RequestError
	cards  []models.CardRecord
	state  State
}

func NewController(backend Backend, logger *slog.Logger, currency string) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if currency == "" {
		currency = DefaultCurrencySymbol
	}
	return &Controller{
		backend:  backend,
		logger:   logger.With(slog.String("component", "controller")),
		currency: currency,
		cards:    []models.CardRecord{},
	}
}

// OnChange stores the raw value and shows its validation result.
func (c *Controller) OnChange(field Field, value string) models.FieldError {
	fe := models.FieldError{Message: ValidateField(field, value), Show: true}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p := c.draftSlot(field); p != nil {
		*p = value
	}
	c.setFieldError(field, fe)
	return fe
}

// OnBlur validates value without storing it. A valid value hides the error.
func (c *Controller) OnBlur(field Field, value string) models.FieldError {
	msg := ValidateField(field, value)
	fe := models.FieldError{Message: msg, Show: msg != ""}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFieldError(field, fe)
	return fe
}

// OnSubmitAttempt validates all three drafts and reports whether the form may be sent.
func (c *Controller) OnSubmitAttempt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateAll()
}

func (c *Controller) validateAll() bool {
	c.errs = models.FieldErrors{
		Name:       shown(ValidateField(FieldName, c.draft.Name)),
		CardNumber: shown(ValidateField(FieldCardNumber, c.draft.CardNumber)),
		Limit:      shown(ValidateField(FieldLimit, c.draft.Limit)),
	}
	return c.errs.Valid()
}

// Submit runs one pass of the submission flow. It returns an error only
// when another submission is still in flight; every other failure is
// recorded in the form state and reported through the Outcome.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return "", ErrSubmitInProgress
	}
	c.reqErr = nil
	if !c.validateAll() {
		c.mu.Unlock()
		return OutcomeInvalid, nil
	}
	draft := c.draft
	c.state = StateSubmitting
	c.mu.Unlock()

	limit, _ := strconv.ParseFloat(draft.Limit, 64)
	err := c.backend.Create(ctx, models.CreateCard{
		Name:        draft.Name,
		CardNumber:  draft.CardNumber,
		CreditLimit: limit,
	})

	var rejected *RejectedError
	switch {
	case err == nil:
		c.mu.Lock()
		c.draft = models.DraftInput{}
		c.errs = models.FieldErrors{}
		c.mu.Unlock()

		c.logger.Info("card created", slog.String("card", cardnum.Mask(draft.CardNumber)))
		// refresh failures land in the request error slot
		_ = c.Refresh(ctx)

		c.finish()
		return OutcomeSuccess, nil

	case errors.As(err, &rejected):
		c.logger.Warn("card rejected by backend",
			slog.Int("status", rejected.StatusCode),
			slog.Any("headers", rejected.Header),
			slog.String("body", rejected.Body),
		)
		c.mu.Lock()
		c.errs.CardNumber = models.FieldError{Message: rejectionMessage(draft), Show: true}
		c.mu.Unlock()

		c.finish()
		return OutcomeRejected, nil

	default:
		c.logger.Error("submitting card", slog.String("err", err.Error()))
		c.mu.Lock()
		c.reqErr = &models.RequestError{Message: err.Error()}
		c.mu.Unlock()

		c.finish()
		return OutcomeFailed, nil
	}
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}

// Refresh replaces the card list with the backend's. On failure the old list stays.
func (c *Controller) Refresh(ctx context.Context) error {
	cards, err := c.backend.List(ctx)
	if err != nil {
		c.logger.Error("fetching cards", slog.String("err", err.Error()))
		c.mu.Lock()
		c.reqErr = &models.RequestError{Message: FetchFailedMessage}
		c.mu.Unlock()
		return fmt.Errorf("refreshing cards: %w", err)
	}

	c.mu.Lock()
	c.cards = cards
	c.mu.Unlock()
	return nil
}

// State reports whether a submission is in flight.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a copy of everything the presentation layer draws.
func (c *Controller) View() models.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := models.View{
		Cards:    cardRows(c.cards, c.currency),
		Empty:    len(c.cards) == 0,
		Draft:    c.draft,
		Errors:   c.errs,
		Loading:  c.state == StateSubmitting,
		Currency: c.currency,
	}
	if v.Empty {
		v.Placeholder = EmptyListPlaceholder
	}
	if c.reqErr != nil {
		re := *c.reqErr
		v.RequestError = &re
	}
	v.SubmitLabel = submitLabelIdle
	if v.Loading {
		v.SubmitLabel = submitLabelLoading
	}
	return v
}

func (c *Controller) draftSlot(field Field) *string {
	switch field {
	case FieldName:
		return &c.draft.Name
	case FieldCardNumber:
		return &c.draft.CardNumber
	case FieldLimit:
		return &c.draft.Limit
	}
	return nil
}

func (c *Controller) setFieldError(field Field, fe models.FieldError) {
	switch field {
	case FieldName:
		c.errs.Name = fe
	case FieldCardNumber:
		c.errs.CardNumber = fe
	case FieldLimit:
		c.errs.Limit = fe
	}
}

func shown(msg string) models.FieldError {
	return models.FieldError{Message: msg, Show: msg != ""}
}

func rejectionMessage(d models.DraftInput) string {
	return fmt.Sprintf("Invalid card number provided: %s for user: %s", cardnum.Mask(d.CardNumber), d.Name)
}
