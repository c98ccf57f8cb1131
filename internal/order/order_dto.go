package order

import "time"

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=PIX PICKUP pix pickup"`
	Note          string `json:"note" binding:"max=280"`
}

type SizesResponse struct {
	Standard string `json:"standard,omitempty"`
	Top      string `json:"top,omitempty"`
	Bottom   string `json:"bottom,omitempty"`
}

type OrderItemResponse struct {
	ProductID   string        `json:"productId"`
	Name        string        `json:"name"`
	Collection  string        `json:"collection,omitempty"`
	UnitPrice   float64       `json:"unitPrice"`
	Qty         int           `json:"qty"`
	TotalPrice  float64       `json:"totalPrice"`
	IsKit       bool          `json:"isKit"`
	ReadyToShip bool          `json:"readyToShip"`
	Sizes       SizesResponse `json:"sizes"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        string              `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	PaymentMethod string              `json:"paymentMethod"`
	CustomerName  string              `json:"customerName,omitempty"`
	CustomerPhone string              `json:"customerPhone,omitempty"`
	Note          string              `json:"note,omitempty"`
	TotalPrice    float64             `json:"totalPrice"`
	PlacedAt      time.Time           `json:"placedAt"`
	CancelledAt   *time.Time          `json:"cancelledAt,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

// PixPaymentResponse is the merchant-presented payment leg of a checkout:
// the copy-paste code plus where to fetch its QR rendering.
type PixPaymentResponse struct {
	Payload string `json:"payload"`
	TxID    string `json:"txid"`
	QRImage string `json:"qrImageUrl"`
}

type CheckoutResponse struct {
	Order OrderResponse       `json:"order"`
	Pix   *PixPaymentResponse `json:"pix,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
