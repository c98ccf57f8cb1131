package cart

import (
	"context"
	"database/sql"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/database/helper"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

type Item struct {
	ID           uuid.UUID
	CartID       uuid.UUID
	ProductID    uuid.UUID
	Quantity     int
	UnitPrice    decimal.Decimal
	IsKit        bool
	ReadyToShip  bool
	SizeStandard string
	SizeTop      string
	SizeBottom   string
	CreatedAt    time.Time

	// Joined from products for the detail view.
	ProductName       string
	ProductImageURL   string
	ProductCollection string
}

//go:generate mockgen -source=cart_repo.go -destination=../mock/cart/cart_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateCart(ctx context.Context, userID uuid.UUID) (Cart, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Cart, error)

	Count(ctx context.Context, cartID uuid.UUID) (int64, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error)
	GetItem(ctx context.Context, cartID, itemID uuid.UUID) (Item, error)

	UpsertItem(ctx context.Context, item Item) error
	UpdateQty(ctx context.Context, cartID, itemID uuid.UUID, qty int) error

	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
	DeleteAllItems(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db DBTX
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateCart(ctx context.Context, userID uuid.UUID) (Cart, error) {
	query := `INSERT INTO carts (user_id) VALUES ($1)
	          ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
	          RETURNING id, user_id, created_at`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (Cart, error) {
	query := `SELECT id, user_id, created_at FROM carts WHERE user_id = $1`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

func (r *repository) Count(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE cart_id = $1`,
		cartID,
	).Scan(&count)
	return count, err
}

const itemColumns = `ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
	ci.is_kit, ci.ready_to_ship, ci.size_standard, ci.size_top, ci.size_bottom,
	ci.created_at, p.name, p.image_url, p.collection`

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var (
		it               Item
		priceRaw         string
		std, top, bottom sql.NullString
	)
	err := row.Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &priceRaw,
		&it.IsKit, &it.ReadyToShip, &std, &top, &bottom,
		&it.CreatedAt, &it.ProductName, &it.ProductImageURL, &it.ProductCollection,
	)
	if err != nil {
		return Item{}, err
	}

	it.UnitPrice = helper.DecimalFromNumeric(priceRaw)
	it.SizeStandard = helper.NullToString(std)
	it.SizeTop = helper.NullToString(top)
	it.SizeBottom = helper.NullToString(bottom)
	return it, nil
}

func (r *repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error) {
	query := `SELECT ` + itemColumns + `
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          WHERE ci.cart_id = $1
	          ORDER BY ci.created_at`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (Item, error) {
	query := `SELECT ` + itemColumns + `
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          WHERE ci.cart_id = $1 AND ci.id = $2`

	return scanItem(r.db.QueryRowContext(ctx, query, cartID, itemID))
}

// UpsertItem inserts a line or, when the same product+size combination is
// already in the cart, bumps its quantity instead.
func (r *repository) UpsertItem(ctx context.Context, item Item) error {
	query := `INSERT INTO cart_items
	            (cart_id, product_id, quantity, unit_price, is_kit, ready_to_ship,
	             size_standard, size_top, size_bottom)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (cart_id, product_id,
	                       COALESCE(size_standard, ''), COALESCE(size_top, ''), COALESCE(size_bottom, ''))
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
	                        unit_price = EXCLUDED.unit_price`

	_, err := r.db.ExecContext(ctx, query,
		item.CartID, item.ProductID, item.Quantity, item.UnitPrice.StringFixed(2),
		item.IsKit, item.ReadyToShip,
		helper.RawStringToNull(item.SizeStandard),
		helper.RawStringToNull(item.SizeTop),
		helper.RawStringToNull(item.SizeBottom),
	)
	return err
}

func (r *repository) UpdateQty(ctx context.Context, cartID, itemID uuid.UUID, qty int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND id = $2`,
		cartID, itemID, qty,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`,
		cartID, itemID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
