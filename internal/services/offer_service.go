package services

import (
	"errors"
	"strings"
	"sync"

	"gocab/internal/models"
)

var ErrNoOfferSelected = errors.New("no offer selected")

// OfferFilter narrows search results by vehicle category. Category is a
// case-insensitive name substring ("Mini", "Sedan", "SUV", ...); empty or
// "all" matches everything. ACOnly additionally restricts to AC categories.
type OfferFilter struct {
	Category string
	ACOnly   bool
}

func (f OfferFilter) matches(offer *models.Offer) bool {
	if f.ACOnly && !offer.Category.IsAC {
		return false
	}
	if f.Category == "" || strings.EqualFold(f.Category, "all") {
		return true
	}
	return strings.Contains(strings.ToLower(offer.Category.Name), strings.ToLower(f.Category))
}

// FilterOffers returns the matching subset in original order. Filtering is
// idempotent: applying the same filter twice yields the same slice content.
func FilterOffers(offers []models.Offer, filter OfferFilter) []models.Offer {
	filtered := make([]models.Offer, 0, len(offers))
	for i := range offers {
		if filter.matches(&offers[i]) {
			filtered = append(filtered, offers[i])
		}
	}
	return filtered
}

// OfferSelector tracks the single offer chosen on a results view. Selecting
// a new offer replaces the previous one; review requires a selection to
// exist, enforced here rather than by UI disablement alone.
type OfferSelector struct {
	mu       sync.Mutex
	selected *models.Offer
}

func NewOfferSelector() *OfferSelector {
	return &OfferSelector{}
}

func (s *OfferSelector) Select(offer models.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chosen := offer
	s.selected = &chosen
}

func (s *OfferSelector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the current selection, or nil.
func (s *OfferSelector) Selected() *models.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// RequireSelection is the review-booking precondition.
func (s *OfferSelector) RequireSelection() (*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil, ErrNoOfferSelected
	}
	return s.selected, nil
}
