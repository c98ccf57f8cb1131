package cart

import "time"

type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Qty       int    `json:"qty" binding:"required,min=1"`

	// Exactly one shape applies: size for single-piece products,
	// sizeTop+sizeBottom for kits.
	Size       string `json:"size"`
	SizeTop    string `json:"sizeTop"`
	SizeBottom string `json:"sizeBottom"`
}

type UpdateQtyRequest struct {
	Qty int `json:"qty" binding:"required,min=1"`
}

type SizesResponse struct {
	Standard string `json:"standard,omitempty"`
	Top      string `json:"top,omitempty"`
	Bottom   string `json:"bottom,omitempty"`
}

type CartItemResponse struct {
	ID          string        `json:"id"`
	ProductID   string        `json:"productId"`
	Name        string        `json:"name"`
	ImageURL    string        `json:"imageUrl"`
	Collection  string        `json:"collection"`
	Qty         int           `json:"qty"`
	UnitPrice   float64       `json:"unitPrice"`
	Subtotal    float64       `json:"subtotal"`
	IsKit       bool          `json:"isKit"`
	ReadyToShip bool          `json:"readyToShip"`
	Sizes       SizesResponse `json:"sizes"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type CartDetailResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice float64            `json:"totalPrice"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}
