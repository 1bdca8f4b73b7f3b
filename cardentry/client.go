package cardentry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// maxErrorBody caps how much of a failed response body is kept for logging.
const maxErrorBody = 4 << 10

// RejectedError is a non-2xx answer to a create request.
type RejectedError struct {
	StatusCode int
	Header     http.Header
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("create rejected: status=%d", e.StatusCode)
}

// StatusError is a non-2xx answer to a list request.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("list status=%d body=%s", e.StatusCode, e.Body)
}

// Client talks to the remote card collection resource.
type Client struct {
	Base   string
	HTTP   *http.Client
	logger *slog.Logger
}

func NewClient(base string, hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		Base:   strings.TrimRight(base, "/"),
		HTTP:   hc,
		logger: logger.With(slog.String("component", "backend-client")),
	}
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]models.CardRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var cards []models.CardRecord
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	if cards == nil {
		cards = []models.CardRecord{}
	}
	return cards, nil
}

// Create posts one card. Any non-2xx status comes back as *RejectedError.
func (c *Client) Create(ctx context.Context, card models.CreateCard) error {
	b, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("building create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("create card: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return &RejectedError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       readErrorBody(resp.Body),
		}
	}
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	id := uuid.New().String()
	req.Header.Set("X-Request-ID", id)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	logger := c.logger.With(
		slog.String("request_id", id),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Duration("duration", time.Since(start)),
	)
	if err != nil {
		logger.Error("backend request failed", slog.String("err", err.Error()))
		return nil, err
	}
	logger.Debug("backend request done", slog.Int("status", resp.StatusCode))
	return resp, nil
}

func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(b))
}
