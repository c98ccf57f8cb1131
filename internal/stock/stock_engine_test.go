package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readyStandard(size string, qty int) LineItem {
	return LineItem{
		ProductID:   "p1",
		Quantity:    qty,
		Fulfillment: FulfillmentReadyToShip,
		Sizes:       StandardSelection{Size: size},
	}
}

func TestApply_DecrementsStandardSize(t *testing.T) {
	table := Table{Standard: map[string]int{"G": 3, "M": 2}}

	got := Apply(table, []LineItem{readyStandard("G", 2)})

	assert.Equal(t, 1, got.Standard["G"])
	assert.Equal(t, 2, got.Standard["M"], "untouched sizes keep their count")
}

func TestApply_ClampsAtZero(t *testing.T) {
	table := Table{Standard: map[string]int{"M": 2}}

	got := Apply(table, []LineItem{readyStandard("M", 5)})

	assert.Equal(t, 0, got.Standard["M"])
}

func TestApply_AbsentSizeStaysAbsent(t *testing.T) {
	table := Table{Standard: map[string]int{"M": 2}}

	got := Apply(table, []LineItem{readyStandard("GG", 1)})

	_, exists := got.Standard["GG"]
	assert.False(t, exists, "no zero or negative entries created")
	assert.Equal(t, 2, got.Standard["M"])
}

func TestApply_KitDecrementsBucketsIndependently(t *testing.T) {
	table := Table{
		Standard: map[string]int{"M": 4},
		Top:      map[string]int{"P": 2, "M": 1},
		Bottom:   map[string]int{"M": 3},
	}

	got := Apply(table, []LineItem{{
		ProductID:   "kit1",
		Quantity:    1,
		Fulfillment: FulfillmentReadyToShip,
		Sizes:       KitSelection{Top: "P", Bottom: "M"},
	}})

	assert.Equal(t, 1, got.Top["P"])
	assert.Equal(t, 2, got.Bottom["M"])
	assert.Equal(t, 1, got.Top["M"], "other top sizes untouched")
	assert.Equal(t, 4, got.Standard["M"], "standard bucket untouched by kits")
}

func TestApply_MadeToOrderSkipsStock(t *testing.T) {
	table := Table{
		Standard: map[string]int{"G": 3},
		Top:      map[string]int{"M": 2},
		Bottom:   map[string]int{"M": 2},
	}

	got := Apply(table, []LineItem{
		{
			ProductID:   "custom1",
			Quantity:    10,
			Fulfillment: FulfillmentMadeToOrder,
			Sizes:       StandardSelection{Size: "G"},
		},
		{
			ProductID:   "custom2",
			Quantity:    10,
			Fulfillment: FulfillmentMadeToOrder,
			Sizes:       KitSelection{Top: "M", Bottom: "M"},
		},
	})

	assert.Equal(t, table, got)
}

func TestApply_MultipleItemsAccumulate(t *testing.T) {
	table := Table{Standard: map[string]int{"G": 3}}

	got := Apply(table, []LineItem{
		readyStandard("G", 1),
		readyStandard("G", 1),
	})

	assert.Equal(t, 1, got.Standard["G"])
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	table := Table{Standard: map[string]int{"G": 3}}

	_ = Apply(table, []LineItem{readyStandard("G", 3)})

	assert.Equal(t, 3, table.Standard["G"])
}

func TestApply_NeverGoesNegative(t *testing.T) {
	for count := 0; count <= 5; count++ {
		for qty := 0; qty <= 8; qty++ {
			table := Table{Standard: map[string]int{"M": count}}
			got := Apply(table, []LineItem{readyStandard("M", qty)})
			assert.GreaterOrEqual(t, got.Standard["M"], 0, "count=%d qty=%d", count, qty)
		}
	}
}
