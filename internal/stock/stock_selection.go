package stock

import "github.com/shopspring/decimal"

// Fulfillment tells whether a line draws down tracked inventory.
type Fulfillment string

const (
	// FulfillmentReadyToShip is "pronta entrega": the piece exists and its
	// size is decremented at checkout.
	FulfillmentReadyToShip Fulfillment = "READY_TO_SHIP"
	// FulfillmentMadeToOrder pieces are produced after the sale and never
	// touch the stock table.
	FulfillmentMadeToOrder Fulfillment = "MADE_TO_ORDER"
)

// Selection is the size choice of a line item. It is a sealed union:
// single-size garments carry a StandardSelection, two-piece kits a
// KitSelection, and the type system rules out mixing the two.
type Selection interface {
	isSelection()
}

type StandardSelection struct {
	Size string
}

func (StandardSelection) isSelection() {}

// KitSelection picks the two halves of a top+bottom set independently.
type KitSelection struct {
	Top    string
	Bottom string
}

func (KitSelection) isSelection() {}

// LineItem is one purchased product configuration as seen by the engine.
type LineItem struct {
	ProductID   string
	Quantity    int
	UnitPrice   decimal.Decimal
	Fulfillment Fulfillment
	Sizes       Selection
}

// IsKit reports whether the line selects kit sizes.
func (li LineItem) IsKit() bool {
	_, ok := li.Sizes.(KitSelection)
	return ok
}
