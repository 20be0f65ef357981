package models

// FareLine is one labelled amount in a fare breakdown.
type FareLine struct {
	Label  string  `json:"label" bson:"label"`
	Amount float64 `json:"amount" bson:"amount"`
}

// FareBreakdown is the fare engine's output: ordered line items plus totals.
// Amounts are numeric whole currency units; formatting is a presentation
// concern. Lines always sum to Total within one unit of rounding.
type FareBreakdown struct {
	Lines    []FareLine `json:"lines" bson:"lines"`
	Subtotal float64    `json:"subtotal" bson:"subtotal"`
	Tax      float64    `json:"tax" bson:"tax"`
	Total    float64    `json:"total" bson:"total"`

	// PriceMismatch is set when the backend supplied an authoritative
	// final_price that disagrees with the reconstructed line-item sum by more
	// than one unit. Surfaced, never silently reconciled.
	PriceMismatch bool `json:"price_mismatch,omitempty" bson:"price_mismatch,omitempty"`
}

// LineSum re-adds the line items; used to verify the breakdown invariant.
func (f *FareBreakdown) LineSum() float64 {
	var sum float64
	for _, l := range f.Lines {
		sum += l.Amount
	}
	return sum
}
