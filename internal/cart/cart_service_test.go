package cart_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"
	"github.com/Picancianmartin/UniformesCoachSite/internal/product"
	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== FAKE REPOSITORIES ====================

type fakeCartRepo struct {
	CreateCartFn     func(ctx context.Context, userID uuid.UUID) (cart.Cart, error)
	GetByUserIDFn    func(ctx context.Context, userID uuid.UUID) (cart.Cart, error)
	CountFn          func(ctx context.Context, cartID uuid.UUID) (int64, error)
	ListItemsFn      func(ctx context.Context, cartID uuid.UUID) ([]cart.Item, error)
	GetItemFn        func(ctx context.Context, cartID, itemID uuid.UUID) (cart.Item, error)
	UpsertItemFn     func(ctx context.Context, item cart.Item) error
	UpdateQtyFn      func(ctx context.Context, cartID, itemID uuid.UUID, qty int) error
	DeleteItemFn     func(ctx context.Context, cartID, itemID uuid.UUID) error
	DeleteAllItemsFn func(ctx context.Context, cartID uuid.UUID) error
}

func (f *fakeCartRepo) WithTx(tx *sql.Tx) cart.Repository { return f }

func (f *fakeCartRepo) CreateCart(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	return f.CreateCartFn(ctx, userID)
}
func (f *fakeCartRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	return f.GetByUserIDFn(ctx, userID)
}
func (f *fakeCartRepo) Count(ctx context.Context, cartID uuid.UUID) (int64, error) {
	return f.CountFn(ctx, cartID)
}
func (f *fakeCartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]cart.Item, error) {
	return f.ListItemsFn(ctx, cartID)
}
func (f *fakeCartRepo) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (cart.Item, error) {
	return f.GetItemFn(ctx, cartID, itemID)
}
func (f *fakeCartRepo) UpsertItem(ctx context.Context, item cart.Item) error {
	return f.UpsertItemFn(ctx, item)
}
func (f *fakeCartRepo) UpdateQty(ctx context.Context, cartID, itemID uuid.UUID, qty int) error {
	return f.UpdateQtyFn(ctx, cartID, itemID, qty)
}
func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return f.DeleteItemFn(ctx, cartID, itemID)
}
func (f *fakeCartRepo) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	return f.DeleteAllItemsFn(ctx, cartID)
}

type stubProductRepo struct {
	product.Repository
	GetActiveByIDFn func(ctx context.Context, id uuid.UUID) (product.Product, error)
}

func (s *stubProductRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	return s.GetActiveByIDFn(ctx, id)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCartService_AddItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	standardProduct := product.Product{
		ID:    productID,
		Name:  "Camisa Treino",
		Price: decimal.RequireFromString("89.90"),
	}
	kitProduct := product.Product{
		ID:    productID,
		Name:  "Conjunto Regata",
		IsKit: true,
		Price: decimal.RequireFromString("120.00"),
	}

	t.Run("standard_product_snapshots_price", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var upserted cart.Item
		repo := &fakeCartRepo{
			CreateCartFn: func(_ context.Context, uid uuid.UUID) (cart.Cart, error) {
				return cart.Cart{ID: uuid.New(), UserID: uid}, nil
			},
			UpsertItemFn: func(_ context.Context, item cart.Item) error {
				upserted = item
				return nil
			},
		}
		productRepo := &stubProductRepo{
			GetActiveByIDFn: func(_ context.Context, id uuid.UUID) (product.Product, error) {
				return standardProduct, nil
			},
		}

		svc := cart.NewService(db, repo, productRepo)
		err := svc.AddItem(context.Background(), userID.String(), cart.AddItemRequest{
			ProductID: productID.String(),
			Qty:       2,
			Size:      "g",
		})
		require.NoError(t, err)

		assert.Equal(t, "G", upserted.SizeStandard)
		assert.True(t, upserted.UnitPrice.Equal(decimal.RequireFromString("89.90")))
		assert.Equal(t, 2, upserted.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("kit_requires_both_sizes", func(t *testing.T) {
		db, _ := newMockDB(t)
		productRepo := &stubProductRepo{
			GetActiveByIDFn: func(_ context.Context, id uuid.UUID) (product.Product, error) {
				return kitProduct, nil
			},
		}

		svc := cart.NewService(db, &fakeCartRepo{}, productRepo)
		err := svc.AddItem(context.Background(), userID.String(), cart.AddItemRequest{
			ProductID: productID.String(),
			Qty:       1,
			SizeTop:   "M",
		})
		assert.ErrorIs(t, err, cart.ErrSizeSelectionMismatch)
	})

	t.Run("standard_product_rejects_kit_sizes", func(t *testing.T) {
		db, _ := newMockDB(t)
		productRepo := &stubProductRepo{
			GetActiveByIDFn: func(_ context.Context, id uuid.UUID) (product.Product, error) {
				return standardProduct, nil
			},
		}

		svc := cart.NewService(db, &fakeCartRepo{}, productRepo)
		err := svc.AddItem(context.Background(), userID.String(), cart.AddItemRequest{
			ProductID:  productID.String(),
			Qty:        1,
			Size:       "M",
			SizeBottom: "G",
		})
		assert.ErrorIs(t, err, cart.ErrSizeSelectionMismatch)
	})

	t.Run("deleted_product_is_unavailable", func(t *testing.T) {
		db, _ := newMockDB(t)
		productRepo := &stubProductRepo{
			GetActiveByIDFn: func(_ context.Context, id uuid.UUID) (product.Product, error) {
				return product.Product{}, sql.ErrNoRows
			},
		}

		svc := cart.NewService(db, &fakeCartRepo{}, productRepo)
		err := svc.AddItem(context.Background(), userID.String(), cart.AddItemRequest{
			ProductID: productID.String(),
			Qty:       1,
			Size:      "M",
		})
		assert.ErrorIs(t, err, cart.ErrProductUnavailable)
	})
}

func TestCartService_Decrement(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()
	itemID := uuid.New()

	t.Run("removes_line_at_qty_one", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		deleted := false
		repo := &fakeCartRepo{
			GetByUserIDFn: func(_ context.Context, uid uuid.UUID) (cart.Cart, error) {
				return cart.Cart{ID: cartID, UserID: uid}, nil
			},
			GetItemFn: func(_ context.Context, _, _ uuid.UUID) (cart.Item, error) {
				return cart.Item{ID: itemID, Quantity: 1}, nil
			},
			DeleteItemFn: func(_ context.Context, _, _ uuid.UUID) error {
				deleted = true
				return nil
			},
		}

		svc := cart.NewService(db, repo, &stubProductRepo{})
		require.NoError(t, svc.Decrement(context.Background(), userID.String(), itemID.String()))
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("steps_down_above_one", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var newQty int
		repo := &fakeCartRepo{
			GetByUserIDFn: func(_ context.Context, uid uuid.UUID) (cart.Cart, error) {
				return cart.Cart{ID: cartID, UserID: uid}, nil
			},
			GetItemFn: func(_ context.Context, _, _ uuid.UUID) (cart.Item, error) {
				return cart.Item{ID: itemID, Quantity: 3}, nil
			},
			UpdateQtyFn: func(_ context.Context, _, _ uuid.UUID, qty int) error {
				newQty = qty
				return nil
			},
		}

		svc := cart.NewService(db, repo, &stubProductRepo{})
		require.NoError(t, svc.Decrement(context.Background(), userID.String(), itemID.String()))
		assert.Equal(t, 2, newQty)
	})
}

func TestCartService_Snapshots(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()

	repo := &fakeCartRepo{
		GetByUserIDFn: func(_ context.Context, uid uuid.UUID) (cart.Cart, error) {
			return cart.Cart{ID: cartID, UserID: uid}, nil
		},
		ListItemsFn: func(_ context.Context, _ uuid.UUID) ([]cart.Item, error) {
			return []cart.Item{
				{
					ProductID:    uuid.New(),
					Quantity:     2,
					UnitPrice:    decimal.RequireFromString("50.00"),
					ReadyToShip:  true,
					SizeStandard: "G",
					ProductName:  "Camisa Treino",
				},
				{
					ProductID:   uuid.New(),
					Quantity:    1,
					UnitPrice:   decimal.RequireFromString("120.00"),
					IsKit:       true,
					SizeTop:     "M",
					SizeBottom:  "G",
					ProductName: "Conjunto Regata",
				},
			}, nil
		},
	}

	db, _ := newMockDB(t)
	svc := cart.NewService(db, repo, &stubProductRepo{})

	snaps, err := svc.Snapshots(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, stock.FulfillmentReadyToShip, snaps[0].Fulfillment)
	assert.Equal(t, stock.StandardSelection{Size: "G"}, snaps[0].Sizes)

	assert.Equal(t, stock.FulfillmentMadeToOrder, snaps[1].Fulfillment)
	assert.Equal(t, stock.KitSelection{Top: "M", Bottom: "G"}, snaps[1].Sizes)
}
