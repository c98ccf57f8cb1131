package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/database/helper"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uuid.UUID
	OrderNumber   string
	UserID        uuid.UUID
	CustomerName  string
	CustomerPhone string
	Status        string
	PaymentMethod string
	PixTxID       string
	Note          string
	TotalPrice    decimal.Decimal
	PlacedAt      time.Time
	CancelledAt   *time.Time
}

type Item struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	ProductID          uuid.UUID
	NameSnapshot       string
	CollectionSnapshot string
	UnitPrice          decimal.Decimal
	Quantity           int
	TotalPrice         decimal.Decimal
	IsKit              bool
	ReadyToShip        bool
	SizeStandard       string
	SizeTop            string
	SizeBottom         string
}

type ListFilter struct {
	UserID uuid.UUID
	Status string
	Search string
	Limit  int
	Offset int
}

//go:generate mockgen -source=order_repo.go -destination=../mock/order/order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateOrder(ctx context.Context, o Order) (Order, error)
	CreateItem(ctx context.Context, it Item) error
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]Item, error)
	List(ctx context.Context, f ListFilter) ([]Order, int64, error)
	ListAdmin(ctx context.Context, f ListFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Order, error)
	GetCustomer(ctx context.Context, userID uuid.UUID) (name, phone string, err error)
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repository struct {
	db dbtx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: tx}
}

const orderColumns = `id, order_number, user_id, customer_name, customer_phone, status,
	payment_method, pix_txid, note, total_price, placed_at, cancelled_at`

func scanOrder(row interface{ Scan(...any) error }, extra ...any) (Order, error) {
	var (
		o        Order
		priceRaw string
		txid     sql.NullString
		note     sql.NullString
	)

	dest := []any{
		&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.Status,
		&o.PaymentMethod, &txid, &note, &priceRaw, &o.PlacedAt, &o.CancelledAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return Order{}, err
	}

	o.PixTxID = helper.NullToString(txid)
	o.Note = helper.NullToString(note)
	o.TotalPrice = helper.DecimalFromNumeric(priceRaw)
	return o, nil
}

func (r *repository) CreateOrder(ctx context.Context, o Order) (Order, error) {
	query := `INSERT INTO orders
	            (order_number, user_id, customer_name, customer_phone, status,
	             payment_method, pix_txid, note, total_price)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING ` + orderColumns

	row := r.db.QueryRowContext(ctx, query,
		o.OrderNumber, o.UserID, o.CustomerName, o.CustomerPhone, o.Status,
		o.PaymentMethod, helper.RawStringToNull(o.PixTxID), helper.RawStringToNull(o.Note),
		o.TotalPrice.StringFixed(2),
	)
	return scanOrder(row)
}

func (r *repository) CreateItem(ctx context.Context, it Item) error {
	query := `INSERT INTO order_items
	            (order_id, product_id, name_snapshot, collection_snapshot, unit_price,
	             quantity, total_price, is_kit, ready_to_ship,
	             size_standard, size_top, size_bottom)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		it.OrderID, it.ProductID, it.NameSnapshot, it.CollectionSnapshot,
		it.UnitPrice.StringFixed(2), it.Quantity, it.TotalPrice.StringFixed(2),
		it.IsKit, it.ReadyToShip,
		helper.RawStringToNull(it.SizeStandard),
		helper.RawStringToNull(it.SizeTop),
		helper.RawStringToNull(it.SizeBottom),
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) GetItems(ctx context.Context, orderID uuid.UUID) ([]Item, error) {
	query := `SELECT id, order_id, product_id, name_snapshot, collection_snapshot,
	                 unit_price, quantity, total_price, is_kit, ready_to_ship,
	                 size_standard, size_top, size_bottom
	          FROM order_items WHERE order_id = $1 ORDER BY name_snapshot`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var (
			it                Item
			unitRaw, totalRaw string
			std, top, bottom  sql.NullString
		)
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.NameSnapshot, &it.CollectionSnapshot,
			&unitRaw, &it.Quantity, &totalRaw, &it.IsKit, &it.ReadyToShip,
			&std, &top, &bottom,
		); err != nil {
			return nil, err
		}
		it.UnitPrice = helper.DecimalFromNumeric(unitRaw)
		it.TotalPrice = helper.DecimalFromNumeric(totalRaw)
		it.SizeStandard = helper.NullToString(std)
		it.SizeTop = helper.NullToString(top)
		it.SizeBottom = helper.NullToString(bottom)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Order, int64, error) {
	query := `SELECT ` + orderColumns + `, COUNT(*) OVER() AS total_count
	          FROM orders
	          WHERE user_id = $1 AND ($2 = '' OR status = $2)
	          ORDER BY placed_at DESC
	          LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, f.UserID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) ListAdmin(ctx context.Context, f ListFilter) ([]Order, int64, error) {
	query := `SELECT ` + orderColumns + `, COUNT(*) OVER() AS total_count
	          FROM orders
	          WHERE ($1 = '' OR status = $1)
	            AND ($2 = '' OR order_number ILIKE '%' || $2 || '%'
	                         OR customer_name ILIKE '%' || $2 || '%'
	                         OR customer_phone ILIKE '%' || $2 || '%')
	          ORDER BY placed_at DESC
	          LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, f.Status, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]Order, int64, error) {
	orders := make([]Order, 0)
	var total int64
	for rows.Next() {
		o, err := scanOrder(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Order, error) {
	query := `UPDATE orders
	          SET status = $2,
	              cancelled_at = CASE WHEN $2 = 'CANCELLED' THEN now() ELSE cancelled_at END,
	              updated_at = now()
	          WHERE id = $1
	          RETURNING ` + orderColumns

	return scanOrder(r.db.QueryRowContext(ctx, query, id, status))
}

func (r *repository) GetCustomer(ctx context.Context, userID uuid.UUID) (string, string, error) {
	var name, phone string
	err := r.db.QueryRowContext(ctx,
		`SELECT name, phone FROM users WHERE id = $1`, userID,
	).Scan(&name, &phone)
	return name, phone, err
}
