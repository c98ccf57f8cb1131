package order

// Order lifecycle. Pix orders start at AWAITING_PROOF (payment proof comes
// in over WhatsApp), pickup orders at PENDING. Made-to-order content goes
// through IN_PRODUCTION; ready-to-ship-only orders jump straight to
// AWAITING_PICKUP.
const (
	StatusPending        = "PENDING"
	StatusAwaitingProof  = "AWAITING_PROOF"
	StatusInProduction   = "IN_PRODUCTION"
	StatusAwaitingPickup = "AWAITING_PICKUP"
	StatusCompleted      = "COMPLETED"
	StatusCancelled      = "CANCELLED"
)

const (
	PaymentMethodPix    = "PIX"
	PaymentMethodPickup = "PICKUP"
)

var statusTransitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusAwaitingProof:  {},
		StatusInProduction:   {},
		StatusAwaitingPickup: {},
		StatusCancelled:      {},
	},
	StatusAwaitingProof: {
		StatusInProduction:   {},
		StatusAwaitingPickup: {},
		StatusCancelled:      {},
	},
	StatusInProduction: {
		StatusAwaitingPickup: {},
		StatusCompleted:      {},
		StatusCancelled:      {},
	},
	StatusAwaitingPickup: {
		StatusCompleted: {},
		StatusCancelled: {},
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether an admin may move an order from one
// status to another.
func CanTransition(from, to string) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// statusLabels are the customer-facing display names.
var statusLabels = map[string]string{
	StatusPending:        "Aguardando confirmação",
	StatusAwaitingProof:  "Aguardando comprovante",
	StatusInProduction:   "Em produção",
	StatusAwaitingPickup: "Pronto para retirada",
	StatusCompleted:      "Concluído",
	StatusCancelled:      "Cancelado",
}

func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// cancellableByCustomer: once production or pickup prep starts, only the
// admin can cancel.
func cancellableByCustomer(status string) bool {
	return status == StatusPending || status == StatusAwaitingProof
}
