package services

import (
	"errors"
	"testing"

	"gocab/internal/models"
)

func sampleOffers() []models.Offer {
	return []models.Offer{
		{Category: models.CarCategory{Name: "Mini", IsAC: false}, Supplier: models.Supplier{Name: "A"}},
		{Category: models.CarCategory{Name: "Mini AC", IsAC: true}, Supplier: models.Supplier{Name: "B"}},
		{Category: models.CarCategory{Name: "Sedan", IsAC: true}, Supplier: models.Supplier{Name: "C"}},
		{Category: models.CarCategory{Name: "SUV", IsAC: true}, Supplier: models.Supplier{Name: "D"}},
	}
}

func TestFilterOffers(t *testing.T) {
	offers := sampleOffers()

	tests := []struct {
		name          string
		filter        OfferFilter
		wantSuppliers []string
	}{
		{name: "empty filter keeps all", filter: OfferFilter{}, wantSuppliers: []string{"A", "B", "C", "D"}},
		{name: "all keyword keeps all", filter: OfferFilter{Category: "All"}, wantSuppliers: []string{"A", "B", "C", "D"}},
		{name: "category substring", filter: OfferFilter{Category: "mini"}, wantSuppliers: []string{"A", "B"}},
		{name: "ac only", filter: OfferFilter{ACOnly: true}, wantSuppliers: []string{"B", "C", "D"}},
		{name: "category and ac", filter: OfferFilter{Category: "mini", ACOnly: true}, wantSuppliers: []string{"B"}},
		{name: "no match", filter: OfferFilter{Category: "limousine"}, wantSuppliers: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOffers(offers, tt.filter)

			if len(got) != len(tt.wantSuppliers) {
				t.Fatalf("got %d offers, want %d", len(got), len(tt.wantSuppliers))
			}
			for i, want := range tt.wantSuppliers {
				if got[i].Supplier.Name != want {
					t.Errorf("offer[%d] from %q, want %q", i, got[i].Supplier.Name, want)
				}
			}
		})
	}
}

func TestFilterOffersIdempotent(t *testing.T) {
	offers := sampleOffers()
	filter := OfferFilter{ACOnly: true}

	once := FilterOffers(offers, filter)
	twice := FilterOffers(once, filter)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Supplier.Name != twice[i].Supplier.Name {
			t.Errorf("offer[%d] changed between passes", i)
		}
	}
}

func TestOfferSelectorSingleSlot(t *testing.T) {
	selector := NewOfferSelector()
	offers := sampleOffers()

	if selector.Selected() != nil {
		t.Fatal("fresh selector has a selection")
	}

	selector.Select(offers[0])
	selector.Select(offers[2])

	selected := selector.Selected()
	if selected == nil || selected.Supplier.Name != "C" {
		t.Fatalf("selected = %v, want offer from C", selected)
	}

	selector.Clear()
	if selector.Selected() != nil {
		t.Error("selection survived Clear")
	}
}

func TestOfferSelectorRequireSelection(t *testing.T) {
	selector := NewOfferSelector()

	if _, err := selector.RequireSelection(); !errors.Is(err, ErrNoOfferSelected) {
		t.Errorf("err = %v, want ErrNoOfferSelected", err)
	}

	selector.Select(sampleOffers()[1])
	offer, err := selector.RequireSelection()
	if err != nil {
		t.Fatalf("RequireSelection returned error: %v", err)
	}
	if offer.Supplier.Name != "B" {
		t.Errorf("selected supplier = %q, want B", offer.Supplier.Name)
	}
}
