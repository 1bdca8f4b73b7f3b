package cardentry_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alovak/cardentry-playground/cardentry"
	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, backend *fakeBackend) (*cardentry.Controller, chi.Router) {
	t.Helper()
	ctrl := cardentry.NewController(backend, nil, "")
	r := chi.NewRouter()
	cardentry.NewAPI(ctrl, nil).AppendRoutes(r)
	return ctrl, r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAPI_FieldEvents(t *testing.T) {
	_, r := newAPI(t, &fakeBackend{})

	w := postJSON(r, "/api/form/change", `{"field":"name","value":"John123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var fe models.FieldError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fe))
	require.Equal(t, models.FieldError{Message: "Name can only contain letters and spaces", Show: true}, fe)

	w = postJSON(r, "/api/form/blur", `{"field":"name","value":"John Doe"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fe))
	require.Equal(t, models.FieldError{}, fe)

	w = postJSON(r, "/api/form/change", `{"field":"cvv","value":"123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/form/blur", `{"field":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_SubmitFlow(t *testing.T) {
	backend := &fakeBackend{cards: []models.CardRecord{{
		ID: 1, Name: "John Doe", CardNumber: "4111111111111111",
		CreditLimit: decimal.RequireFromString("1000"), Balance: decimal.Zero,
	}}}
	_, r := newAPI(t, backend)

	w := postJSON(r, "/api/form/submit", ``)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cardentry.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, cardentry.OutcomeInvalid, resp.Outcome)
	require.Equal(t, "Name is required", resp.View.Errors.Name.Message)

	postJSON(r, "/api/form/change", `{"field":"name","value":"John Doe"}`)
	postJSON(r, "/api/form/change", `{"field":"cardNumber","value":"4111111111111111"}`)
	postJSON(r, "/api/form/change", `{"field":"limit","value":"1000"}`)

	w = postJSON(r, "/api/form/submit", ``)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, cardentry.OutcomeSuccess, resp.Outcome)
	require.Equal(t, models.DraftInput{}, resp.View.Draft)
	require.Len(t, resp.View.Cards, 1)
	require.Equal(t, "£1000.00", resp.View.Cards[0].CreditLimit)
}

func TestAPI_RefreshAndView(t *testing.T) {
	backend := &fakeBackend{}
	_, r := newAPI(t, backend)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/view", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var v models.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.True(t, v.Empty)
	require.Equal(t, "Add Card", v.SubmitLabel)

	backend.cards = []models.CardRecord{{ID: 3, Name: "Jane Roe", CardNumber: "5500000000000004"}}
	w = postJSON(r, "/api/cards/refresh", ``)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.Len(t, v.Cards, 1)
	require.Equal(t, "****-****-****-0004", v.Cards[0].CardNumber)
	require.Equal(t, []string{"list"}, backend.Calls())
}

func TestAPI_Page(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, r := newAPI(t, backend)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Credit Card System")
	require.Contains(t, body, "No cards added yet.")
	require.Contains(t, body, `placeholder="Enter cardholder name"`)
	require.Contains(t, body, "Limit can be numerical only")
	require.Contains(t, body, "Add Card")
	require.NotContains(t, body, `role="alert"`)

	// classic form post with a bad card number
	form := url.Values{"name": {"John Doe"}, "cardNumber": {"1234abc"}, "limit": {"1000"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	require.Empty(t, backend.Calls())
	require.Equal(t, "1234abc", ctrl.View().Draft.CardNumber)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	body = w.Body.String()
	require.Contains(t, body, `id="cardNumber-error" role="alert"`)
	require.Contains(t, body, "Card number must be numeric and up to 19 digits")
	require.Contains(t, body, `value="1234abc"`)

	// fixed and resubmitted
	backend.cards = []models.CardRecord{{
		ID: 1, Name: "John Doe", CardNumber: "4111111111111111",
		CreditLimit: decimal.RequireFromString("1000"), Balance: decimal.Zero,
	}}
	form.Set("cardNumber", "4111111111111111")
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	body = w.Body.String()
	require.Contains(t, body, "****-****-****-1111")
	require.Contains(t, body, "£1000.00")
	require.Contains(t, body, "£0.00")
	require.NotContains(t, body, "No cards added yet.")
}
