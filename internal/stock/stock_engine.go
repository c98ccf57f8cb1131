package stock

// Apply returns the table after purchasing the given line items. Only
// ready-to-ship lines are applied; kits decrement their top and bottom
// buckets independently, standard items only the standard bucket. The
// input table is not mutated.
func Apply(table Table, items []LineItem) Table {
	out := table.clone()

	for _, item := range items {
		if item.Fulfillment != FulfillmentReadyToShip {
			continue
		}

		switch sizes := item.Sizes.(type) {
		case KitSelection:
			decrement(out.Top, sizes.Top, item.Quantity)
			decrement(out.Bottom, sizes.Bottom, item.Quantity)
		case StandardSelection:
			decrement(out.Standard, sizes.Size, item.Quantity)
		}
	}

	return out
}
