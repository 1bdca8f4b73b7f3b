package devbackend

import (
	"fmt"
	"sync"

	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/alovak/cardentry-playground/internal/cardnum"
)

var ErrConflict = fmt.Errorf("conflict")

// Repository keeps cards in memory, in creation order.
type Repository struct {
	mu       sync.RWMutex
	cards    []models.CardRecord
	numIndex map[string]struct{}
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{
		cards:    make([]models.CardRecord, 0),
		numIndex: make(map[string]struct{}),
		nextID:   1,
	}
}

// CreateCard assigns the next id and stores the card.
func (r *Repository) CreateCard(card models.CardRecord) (models.CardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cardnum.Normalize(card.CardNumber)
	if _, ok := r.numIndex[key]; ok {
		return models.CardRecord{}, fmt.Errorf("card number exists: %w", ErrConflict)
	}

	card.ID = r.nextID
	r.nextID++
	r.cards = append(r.cards, card)
	r.numIndex[key] = struct{}{}
	return card, nil
}

// ListCards returns a copy of all cards.
func (r *Repository) ListCards() []models.CardRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.CardRecord, len(r.cards))
	copy(out, r.cards)
	return out
}
