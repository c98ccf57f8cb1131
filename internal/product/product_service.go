package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/database/helper"
	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"

	"github.com/google/uuid"
)

//go:generate mockgen -source=product_service.go -destination=../mock/product/product_service_mock.go -package=mock
type Service interface {
	// Storefront
	ListPublic(ctx context.Context, q ListPublicQuery) ([]ProductResponse, int64, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)

	// Admin
	ListAdmin(ctx context.Context, q ListAdminQuery) ([]ProductAdminResponse, int64, error)
	GetByIDAdmin(ctx context.Context, id string) (ProductAdminResponse, error)
	Create(ctx context.Context, req CreateProductRequest) (ProductAdminResponse, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (ProductAdminResponse, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (ProductAdminResponse, error)
	ReplaceStock(ctx context.Context, id string, req ReplaceStockRequest) (ProductAdminResponse, error)
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (ProductAdminResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidProductID
	}
	return uid, nil
}

func (s *service) ListPublic(ctx context.Context, q ListPublicQuery) ([]ProductResponse, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 12
	}

	products, total, err := s.repo.ListPublic(ctx, ListPublicFilter{
		Search:      strings.TrimSpace(q.Search),
		Collection:  strings.TrimSpace(q.Collection),
		ReadyToShip: q.ReadyToShip,
		SortBy:      q.SortBy,
		Limit:       q.Limit,
		Offset:      (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toPublicResponse(p))
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	uid, err := s.parseID(id)
	if err != nil {
		return ProductResponse{}, err
	}

	p, err := s.repo.GetActiveByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, err
	}
	return toPublicResponse(p), nil
}

func (s *service) ListAdmin(ctx context.Context, q ListAdminQuery) ([]ProductAdminResponse, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}

	products, total, err := s.repo.ListAdmin(ctx, ListAdminFilter{
		Search:         strings.TrimSpace(q.Search),
		Collection:     strings.TrimSpace(q.Collection),
		IncludeDeleted: q.IncludeDeleted,
		Limit:          q.Limit,
		Offset:         (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProductAdminResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toAdminResponse(p))
	}
	return out, total, nil
}

func (s *service) GetByIDAdmin(ctx context.Context, id string) (ProductAdminResponse, error) {
	uid, err := s.parseID(id)
	if err != nil {
		return ProductAdminResponse{}, err
	}

	p, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}
	return toAdminResponse(p), nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (ProductAdminResponse, error) {
	if req.Price <= 0 {
		return ProductAdminResponse{}, ErrInvalidPrice
	}
	if err := validateStockTable(req.Stock, req.IsKit); err != nil {
		return ProductAdminResponse{}, err
	}

	p, err := s.repo.Create(ctx, Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Collection:  strings.TrimSpace(req.Collection),
		Price:       helper.Float64ToDecimalExact(req.Price),
		ImageURL:    req.ImageURL,
		IsKit:       req.IsKit,
		ReadyToShip: req.ReadyToShip,
		Stock:       req.Stock,
	})
	if err != nil {
		return ProductAdminResponse{}, err
	}
	return toAdminResponse(p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProductRequest) (ProductAdminResponse, error) {
	uid, err := s.parseID(id)
	if err != nil {
		return ProductAdminResponse{}, err
	}

	current, err := s.repo.GetActiveByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}

	if req.Name != nil {
		current.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		current.Description = strings.TrimSpace(*req.Description)
	}
	if req.Collection != nil {
		current.Collection = strings.TrimSpace(*req.Collection)
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return ProductAdminResponse{}, ErrInvalidPrice
		}
		current.Price = helper.Float64ToDecimalExact(*req.Price)
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}
	if req.ReadyToShip != nil {
		current.ReadyToShip = *req.ReadyToShip
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}
	return toAdminResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := s.parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *service) Restore(ctx context.Context, id string) (ProductAdminResponse, error) {
	uid, err := s.parseID(id)
	if err != nil {
		return ProductAdminResponse{}, err
	}

	p, err := s.repo.Restore(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}
	return toAdminResponse(p), nil
}

func (s *service) ReplaceStock(ctx context.Context, id string, req ReplaceStockRequest) (ProductAdminResponse, error) {
	uid, err := s.parseID(id)
	if err != nil {
		return ProductAdminResponse{}, err
	}

	current, err := s.repo.GetActiveByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}

	if err := validateStockTable(req.Stock, current.IsKit); err != nil {
		return ProductAdminResponse{}, err
	}

	p, err := s.repo.ReplaceStock(ctx, uid, req.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}
	return toAdminResponse(p), nil
}

func (s *service) AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (ProductAdminResponse, error) {
	uid, err := s.parseID(id)
	if err != nil {
		return ProductAdminResponse{}, err
	}

	current, err := s.repo.GetActiveByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductAdminResponse{}, ErrProductNotFound
		}
		return ProductAdminResponse{}, err
	}

	table := current.Stock
	bucket, err := bucketFor(&table, req.Bucket, current.IsKit)
	if err != nil {
		return ProductAdminResponse{}, err
	}

	size := strings.ToUpper(strings.TrimSpace(req.Size))
	next := bucket[size] + req.Delta
	if next < 0 {
		next = 0
	}
	if next == 0 && req.Delta < 0 {
		// A downward adjust that bottoms out removes the size instead of
		// leaving a zero entry.
		delete(bucket, size)
	} else {
		bucket[size] = next
	}

	p, err := s.repo.ReplaceStock(ctx, uid, table)
	if err != nil {
		return ProductAdminResponse{}, err
	}
	return toAdminResponse(p), nil
}

// bucketFor resolves a named bucket, allocating it on the table when the
// admin stocks a size for the first time.
func bucketFor(table *stock.Table, name string, isKit bool) (map[string]int, error) {
	switch strings.ToLower(name) {
	case "standard":
		if isKit {
			return nil, ErrKitStockBucket
		}
		if table.Standard == nil {
			table.Standard = map[string]int{}
		}
		return table.Standard, nil
	case "top":
		if !isKit {
			return nil, ErrKitStockBucket
		}
		if table.Top == nil {
			table.Top = map[string]int{}
		}
		return table.Top, nil
	case "bottom":
		if !isKit {
			return nil, ErrKitStockBucket
		}
		if table.Bottom == nil {
			table.Bottom = map[string]int{}
		}
		return table.Bottom, nil
	default:
		return nil, ErrInvalidStockBucket
	}
}

func validateStockTable(table stock.Table, isKit bool) error {
	buckets := []map[string]int{table.Standard, table.Top, table.Bottom}
	for _, b := range buckets {
		for _, count := range b {
			if count < 0 {
				return ErrNegativeStock
			}
		}
	}
	if isKit && len(table.Standard) > 0 {
		return ErrKitStockBucket
	}
	if !isKit && (len(table.Top) > 0 || len(table.Bottom) > 0) {
		return ErrKitStockBucket
	}
	return nil
}

func toPublicResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Collection:  p.Collection,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		IsKit:       p.IsKit,
		ReadyToShip: p.ReadyToShip,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

func toAdminResponse(p Product) ProductAdminResponse {
	return ProductAdminResponse{
		ProductResponse: toPublicResponse(p),
		DeletedAt:       p.DeletedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
