// Package stock holds the per-size inventory table and the clamped
// decrement applied at checkout. Everything here is pure; persistence and
// locking live in the product repository.
package stock

// Table is the per-product inventory, keyed by size code ("P", "M", "G"...).
// Kits draw from the top and bottom buckets, everything else from standard.
// A missing size means zero and stays missing; counts never go negative.
type Table struct {
	Standard map[string]int `json:"standard,omitempty"`
	Top      map[string]int `json:"top,omitempty"`
	Bottom   map[string]int `json:"bottom,omitempty"`
}

func (t Table) clone() Table {
	return Table{
		Standard: cloneBucket(t.Standard),
		Top:      cloneBucket(t.Top),
		Bottom:   cloneBucket(t.Bottom),
	}
}

func cloneBucket(b map[string]int) map[string]int {
	if b == nil {
		return nil
	}
	out := make(map[string]int, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Count returns the stock for a size in a bucket; absent keys read as 0.
func Count(bucket map[string]int, size string) int {
	return bucket[size]
}

// decrement subtracts qty from one size, clamped at zero. Absent keys are
// left absent so the table never grows zero or negative entries.
func decrement(bucket map[string]int, size string, qty int) {
	current, ok := bucket[size]
	if !ok {
		return
	}
	next := current - qty
	if next < 0 {
		next = 0
	}
	bucket[size] = next
}
