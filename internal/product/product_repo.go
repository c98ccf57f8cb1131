package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Collection  string
	Price       decimal.Decimal
	ImageURL    string
	IsKit       bool
	ReadyToShip bool
	Stock       stock.Table
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListPublicFilter struct {
	Search      string
	Collection  string
	ReadyToShip *bool
	SortBy      string
	Limit       int
	Offset      int
}

type ListAdminFilter struct {
	Search         string
	Collection     string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListPublic(ctx context.Context, f ListPublicFilter) ([]Product, int64, error)
	ListAdmin(ctx context.Context, f ListAdminFilter) ([]Product, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (Product, error)
	ReplaceStock(ctx context.Context, id uuid.UUID, table stock.Table) (Product, error)

	// Transaction-scoped stock access used by checkout. The row lock holds
	// until the caller's transaction ends.
	GetStockForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (stock.Table, error)
	UpdateStockTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, table stock.Table) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, collection, price, image_url,
	is_kit, ready_to_ship, stock, deleted_at, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var (
		p        Product
		priceRaw string
		stockRaw []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Collection, &priceRaw, &p.ImageURL,
		&p.IsKit, &p.ReadyToShip, &stockRaw, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}

	p.Price, err = decimal.NewFromString(priceRaw)
	if err != nil {
		return Product{}, fmt.Errorf("scan product price: %w", err)
	}
	if err := json.Unmarshal(stockRaw, &p.Stock); err != nil {
		return Product{}, fmt.Errorf("scan product stock: %w", err)
	}
	return p, nil
}

func marshalStock(table stock.Table) ([]byte, error) {
	return json.Marshal(table)
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	stockJSON, err := marshalStock(p.Stock)
	if err != nil {
		return Product{}, err
	}

	query := `INSERT INTO products
	            (name, description, collection, price, image_url, is_kit, ready_to_ship, stock)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Collection, p.Price.StringFixed(2),
		p.ImageURL, p.IsKit, p.ReadyToShip, stockJSON,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, p Product) (Product, error) {
	query := `UPDATE products
	          SET name = $2, description = $3, collection = $4, price = $5,
	              image_url = $6, ready_to_ship = $7, updated_at = now()
	          WHERE id = $1 AND deleted_at IS NULL
	          RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Collection, p.Price.StringFixed(2),
		p.ImageURL, p.ReadyToShip,
	)
	return scanProduct(row)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) GetActiveByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) ListPublic(ctx context.Context, f ListPublicFilter) ([]Product, int64, error) {
	where := `WHERE deleted_at IS NULL
	            AND ($1 = '' OR name ILIKE '%' || $1 || '%')
	            AND ($2 = '' OR collection = $2)
	            AND ($3::boolean IS NULL OR ready_to_ship = $3)`

	var toShip sql.NullBool
	if f.ReadyToShip != nil {
		toShip = sql.NullBool{Bool: *f.ReadyToShip, Valid: true}
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, f.Search, f.Collection, toShip).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch f.SortBy {
	case "price_asc":
		order = "price ASC"
	case "price_desc":
		order = "price DESC"
	case "name":
		order = "name ASC"
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where +
		` ORDER BY ` + order + ` LIMIT $4 OFFSET $5`

	rows, err := r.db.QueryContext(ctx, query, f.Search, f.Collection, toShip, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectProducts(rows, total)
}

func (r *repository) ListAdmin(ctx context.Context, f ListAdminFilter) ([]Product, int64, error) {
	where := `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
	            AND ($2 = '' OR collection = $2)
	            AND ($3 OR deleted_at IS NULL)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, f.Search, f.Collection, f.IncludeDeleted).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where +
		` ORDER BY created_at DESC LIMIT $4 OFFSET $5`

	rows, err := r.db.QueryContext(ctx, query, f.Search, f.Collection, f.IncludeDeleted, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectProducts(rows, total)
}

func collectProducts(rows *sql.Rows, total int64) ([]Product, int64, error) {
	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET deleted_at = now(), updated_at = now()
	          WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
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

func (r *repository) Restore(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `UPDATE products SET deleted_at = NULL, updated_at = now()
	          WHERE id = $1 AND deleted_at IS NOT NULL
	          RETURNING ` + productColumns

	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) ReplaceStock(ctx context.Context, id uuid.UUID, table stock.Table) (Product, error) {
	stockJSON, err := marshalStock(table)
	if err != nil {
		return Product{}, err
	}

	query := `UPDATE products SET stock = $2, updated_at = now()
	          WHERE id = $1 AND deleted_at IS NULL
	          RETURNING ` + productColumns

	return scanProduct(r.db.QueryRowContext(ctx, query, id, stockJSON))
}

func (r *repository) GetStockForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (stock.Table, error) {
	query := `SELECT stock FROM products WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	var raw []byte
	if err := tx.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
		return stock.Table{}, err
	}

	var table stock.Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return stock.Table{}, fmt.Errorf("scan locked stock: %w", err)
	}
	return table, nil
}

func (r *repository) UpdateStockTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, table stock.Table) error {
	stockJSON, err := marshalStock(table)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stockJSON,
	)
	return err
}
