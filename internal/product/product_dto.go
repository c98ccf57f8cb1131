package product

import (
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"
)

type ListPublicQuery struct {
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=12"`
	Search      string `form:"search"`
	Collection  string `form:"collection"`
	ReadyToShip *bool  `form:"readyToShip"`
	SortBy      string `form:"sortBy,default=newest"`
}

type ListAdminQuery struct {
	Page           int    `form:"page,default=1"`
	Limit          int    `form:"limit,default=10"`
	Search         string `form:"search"`
	Collection     string `form:"collection"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

type CreateProductRequest struct {
	Name        string      `json:"name" binding:"required,min=2,max=120"`
	Description string      `json:"description"`
	Collection  string      `json:"collection"`
	Price       float64     `json:"price" binding:"required"`
	ImageURL    string      `json:"imageUrl" binding:"omitempty,url"`
	IsKit       bool        `json:"isKit"`
	ReadyToShip bool        `json:"readyToShip"`
	Stock       stock.Table `json:"stock"`
}

// All fields optional; nil means "leave as is".
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Description *string  `json:"description"`
	Collection  *string  `json:"collection"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
	ReadyToShip *bool    `json:"readyToShip"`
}

// ReplaceStockRequest swaps the whole per-size table in one write.
type ReplaceStockRequest struct {
	Stock stock.Table `json:"stock" binding:"required"`
}

// AdjustStockRequest nudges a single size up or down. Negative deltas
// clamp at zero rather than erroring, matching checkout semantics.
type AdjustStockRequest struct {
	Bucket string `json:"bucket" binding:"required"`
	Size   string `json:"size" binding:"required"`
	Delta  int    `json:"delta" binding:"required"`
}

type ProductResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Collection  string      `json:"collection"`
	Price       float64     `json:"price"`
	ImageURL    string      `json:"imageUrl"`
	IsKit       bool        `json:"isKit"`
	ReadyToShip bool        `json:"readyToShip"`
	Stock       stock.Table `json:"stock"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type ProductAdminResponse struct {
	ProductResponse
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
