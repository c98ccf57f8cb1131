package cart

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	autherrors "github.com/Picancianmartin/UniformesCoachSite/internal/auth/errors"
	"github.com/Picancianmartin/UniformesCoachSite/internal/product"
	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is a cart line as checkout consumes it: the price and
// fulfillment captured at add time plus the size selection.
type Snapshot struct {
	ProductID   uuid.UUID
	Name        string
	Collection  string
	Quantity    int
	UnitPrice   decimal.Decimal
	IsKit       bool
	Fulfillment stock.Fulfillment
	Sizes       stock.Selection
}

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, userID string) (CartDetailResponse, error)
	Count(ctx context.Context, userID string) (int64, error)

	AddItem(ctx context.Context, userID string, req AddItemRequest) error
	UpdateQty(ctx context.Context, userID, itemID string, req UpdateQtyRequest) error
	Increment(ctx context.Context, userID, itemID string) error
	Decrement(ctx context.Context, userID, itemID string) error
	DeleteItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error

	// Checkout support.
	Snapshots(ctx context.Context, userID string) ([]Snapshot, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	productRepo product.Repository
}

func NewService(db *sql.DB, repo Repository, productRepo product.Repository) Service {
	return &service{
		db:          db,
		repo:        repo,
		productRepo: productRepo,
	}
}

func (s *service) parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, autherrors.ErrInvalidUserID
	}
	return id, nil
}

func (s *service) parseItemID(itemID string) (uuid.UUID, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return uuid.Nil, ErrCartItemNotFound
	}
	return id, nil
}

func (s *service) cartOf(ctx context.Context, uid uuid.UUID) (uuid.UUID, error) {
	c, err := s.repo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrCartNotFound
		}
		return uuid.Nil, err
	}
	return c.ID, nil
}

// selectionFor checks the request's size fields against the product type
// and normalizes them to upper case.
func selectionFor(req AddItemRequest, isKit bool) (standard, top, bottom string, err error) {
	size := strings.ToUpper(strings.TrimSpace(req.Size))
	sizeTop := strings.ToUpper(strings.TrimSpace(req.SizeTop))
	sizeBottom := strings.ToUpper(strings.TrimSpace(req.SizeBottom))

	if isKit {
		if size != "" || sizeTop == "" || sizeBottom == "" {
			return "", "", "", ErrSizeSelectionMismatch
		}
		return "", sizeTop, sizeBottom, nil
	}

	if size == "" || sizeTop != "" || sizeBottom != "" {
		return "", "", "", ErrSizeSelectionMismatch
	}
	return size, "", "", nil
}

func (s *service) AddItem(ctx context.Context, userID string, req AddItemRequest) error {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}

	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return product.ErrInvalidProductID
	}

	p, err := s.productRepo.GetActiveByID(ctx, pid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductUnavailable
		}
		return err
	}

	std, top, bottom, err := selectionFor(req, p.IsKit)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)

	c, err := repo.CreateCart(ctx, uid)
	if err != nil {
		return err
	}

	if err := repo.UpsertItem(ctx, Item{
		CartID:       c.ID,
		ProductID:    p.ID,
		Quantity:     req.Qty,
		UnitPrice:    p.Price,
		IsKit:        p.IsKit,
		ReadyToShip:  p.ReadyToShip,
		SizeStandard: std,
		SizeTop:      top,
		SizeBottom:   bottom,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Detail(ctx context.Context, userID string) (CartDetailResponse, error) {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return CartDetailResponse{}, err
	}

	cartID, err := s.cartOf(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return CartDetailResponse{Items: []CartItemResponse{}}, nil
		}
		return CartDetailResponse{}, err
	}

	items, err := s.repo.ListItems(ctx, cartID)
	if err != nil {
		return CartDetailResponse{}, err
	}

	res := CartDetailResponse{Items: make([]CartItemResponse, 0, len(items))}
	total := decimal.Zero
	for _, it := range items {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(subtotal)
		res.TotalItems += it.Quantity

		res.Items = append(res.Items, CartItemResponse{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			Name:        it.ProductName,
			ImageURL:    it.ProductImageURL,
			Collection:  it.ProductCollection,
			Qty:         it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Subtotal:    subtotal.InexactFloat64(),
			IsKit:       it.IsKit,
			ReadyToShip: it.ReadyToShip,
			Sizes: SizesResponse{
				Standard: it.SizeStandard,
				Top:      it.SizeTop,
				Bottom:   it.SizeBottom,
			},
			CreatedAt: it.CreatedAt,
		})
	}
	res.TotalPrice = total.InexactFloat64()
	return res, nil
}

func (s *service) Count(ctx context.Context, userID string) (int64, error) {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return 0, err
	}

	cartID, err := s.cartOf(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return s.repo.Count(ctx, cartID)
}

func (s *service) UpdateQty(ctx context.Context, userID, itemID string, req UpdateQtyRequest) error {
	if req.Qty < 1 {
		return ErrInvalidQty
	}

	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}
	iid, err := s.parseItemID(itemID)
	if err != nil {
		return err
	}

	cartID, err := s.cartOf(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateQty(ctx, cartID, iid, req.Qty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

func (s *service) Increment(ctx context.Context, userID, itemID string) error {
	return s.step(ctx, userID, itemID, +1)
}

func (s *service) Decrement(ctx context.Context, userID, itemID string) error {
	return s.step(ctx, userID, itemID, -1)
}

// step moves an item's quantity by one; stepping below 1 removes the line.
func (s *service) step(ctx context.Context, userID, itemID string, delta int) error {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}
	iid, err := s.parseItemID(itemID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)

	c, err := repo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartNotFound
		}
		return err
	}

	item, err := repo.GetItem(ctx, c.ID, iid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartItemNotFound
		}
		return err
	}

	next := item.Quantity + delta
	if next < 1 {
		if err := repo.DeleteItem(ctx, c.ID, iid); err != nil {
			return err
		}
	} else if err := repo.UpdateQty(ctx, c.ID, iid, next); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) DeleteItem(ctx context.Context, userID, itemID string) error {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}
	iid, err := s.parseItemID(itemID)
	if err != nil {
		return err
	}

	cartID, err := s.cartOf(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, cartID, iid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}

	cartID, err := s.cartOf(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil
		}
		return err
	}

	return s.repo.DeleteAllItems(ctx, cartID)
}

func (s *service) Snapshots(ctx context.Context, userID string) ([]Snapshot, error) {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return nil, err
	}

	cartID, err := s.cartOf(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return []Snapshot{}, nil
		}
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, len(items))
	for _, it := range items {
		fulfillment := stock.FulfillmentMadeToOrder
		if it.ReadyToShip {
			fulfillment = stock.FulfillmentReadyToShip
		}

		var sizes stock.Selection
		if it.IsKit {
			sizes = stock.KitSelection{Top: it.SizeTop, Bottom: it.SizeBottom}
		} else {
			sizes = stock.StandardSelection{Size: it.SizeStandard}
		}

		snapshots = append(snapshots, Snapshot{
			ProductID:   it.ProductID,
			Name:        it.ProductName,
			Collection:  it.ProductCollection,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			IsKit:       it.IsKit,
			Fulfillment: fulfillment,
			Sizes:       sizes,
		})
	}
	return snapshots, nil
}
