package models

// Size identifies one of the nine plate dimension categories.
type Size int

const NumSizes = 9

// AllSizes returns sizes 1..9 in order.
func AllSizes() []Size {
	sizes := make([]Size, NumSizes)
	for i := range sizes {
		sizes[i] = Size(i + 1)
	}
	return sizes
}

func (s Size) Valid() bool {
	return s >= 1 && s <= NumSizes
}

// SizeQuantity is the per-size part of a challan item row.
type SizeQuantity struct {
	Qty      int    `json:"qty" bson:"qty"`
	Borrowed int    `json:"borrowed" bson:"borrowed"`
	Note     string `json:"note,omitempty" bson:"note,omitempty"`
}

// ItemQuantities holds the item row of a challan, indexed by Size-1.
type ItemQuantities struct {
	Sizes [NumSizes]SizeQuantity `json:"sizes" bson:"sizes"`
	Note  string                 `json:"note,omitempty" bson:"note,omitempty"`
}

// Get returns the quantities for s, or zero for an invalid size.
func (q *ItemQuantities) Get(s Size) SizeQuantity {
	if q == nil || !s.Valid() {
		return SizeQuantity{}
	}
	return q.Sizes[s-1]
}

func (q *ItemQuantities) Set(s Size, v SizeQuantity) {
	if !s.Valid() {
		return
	}
	q.Sizes[s-1] = v
}

// GrandTotal sums qty and borrowed across all sizes.
func (q *ItemQuantities) GrandTotal() int {
	if q == nil {
		return 0
	}
	total := 0
	for _, s := range AllSizes() {
		v := q.Get(s)
		total += v.Qty + v.Borrowed
	}
	return total
}

// Normalize clamps negative counts to zero and reports whether anything changed.
func (q *ItemQuantities) Normalize() bool {
	changed := false
	for i := range q.Sizes {
		if q.Sizes[i].Qty < 0 {
			q.Sizes[i].Qty = 0
			changed = true
		}
		if q.Sizes[i].Borrowed < 0 {
			q.Sizes[i].Borrowed = 0
			changed = true
		}
	}
	return changed
}
