package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/database/helper"

	"github.com/shopspring/decimal"
)

// Totals covers the orders that actually sold: cancelled ones never
// count toward revenue or pieces.
type Totals struct {
	Revenue decimal.Decimal
	Orders  int
	Pieces  int
}

type BucketTotal struct {
	Name    string
	Revenue decimal.Decimal
	Pieces  int
}

type DayTotal struct {
	Day     time.Time
	Revenue decimal.Decimal
	Orders  int
}

// ItemRow is one sold line as it lands in the "Pedidos" sheet.
type ItemRow struct {
	OrderNumber   string
	PlacedAt      time.Time
	CustomerName  string
	Status        string
	PaymentMethod string
	ProductName   string
	Collection    string
	SizeStandard  string
	SizeTop       string
	SizeBottom    string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
}

//go:generate mockgen -source=report_repo.go -destination=../mock/report/report_repo_mock.go -package=mock
type Repository interface {
	Totals(ctx context.Context, from, to time.Time) (Totals, error)
	ByCollection(ctx context.Context, from, to time.Time) ([]BucketTotal, error)
	ByPaymentMethod(ctx context.Context, from, to time.Time) ([]BucketTotal, error)
	ByDay(ctx context.Context, from, to time.Time) ([]DayTotal, error)
	ItemRows(ctx context.Context, from, to time.Time) ([]ItemRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// rangeFilter is shared by every aggregate: half-open [from, to) on
// placed_at, cancelled orders excluded.
const rangeFilter = `o.placed_at >= $1 AND o.placed_at < $2 AND o.status <> 'CANCELLED'`

func (r *repository) Totals(ctx context.Context, from, to time.Time) (Totals, error) {
	query := `
		SELECT
			COALESCE(SUM(o.total_price), 0),
			COUNT(o.id),
			COALESCE((
				SELECT SUM(oi.quantity)
				FROM order_items oi
				JOIN orders o ON o.id = oi.order_id
				WHERE ` + rangeFilter + `
			), 0)
		FROM orders o
		WHERE ` + rangeFilter

	var (
		t          Totals
		revenueRaw string
	)
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&revenueRaw, &t.Orders, &t.Pieces)
	if err != nil {
		return Totals{}, err
	}
	t.Revenue = helper.DecimalFromNumeric(revenueRaw)
	return t, nil
}

func (r *repository) ByCollection(ctx context.Context, from, to time.Time) ([]BucketTotal, error) {
	query := `
		SELECT
			COALESCE(NULLIF(oi.collection_snapshot, ''), 'Sem coleção'),
			COALESCE(SUM(oi.total_price), 0),
			COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE ` + rangeFilter + `
		GROUP BY 1
		ORDER BY 2 DESC`

	return r.queryBuckets(ctx, query, from, to)
}

func (r *repository) ByPaymentMethod(ctx context.Context, from, to time.Time) ([]BucketTotal, error) {
	query := `
		SELECT
			o.payment_method,
			COALESCE(SUM(o.total_price), 0),
			COALESCE(SUM(p.pieces), 0)
		FROM orders o
		LEFT JOIN LATERAL (
			SELECT SUM(oi.quantity) AS pieces
			FROM order_items oi
			WHERE oi.order_id = o.id
		) p ON true
		WHERE ` + rangeFilter + `
		GROUP BY o.payment_method
		ORDER BY 2 DESC`

	return r.queryBuckets(ctx, query, from, to)
}

func (r *repository) queryBuckets(ctx context.Context, query string, from, to time.Time) ([]BucketTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []BucketTotal
	for rows.Next() {
		var (
			b          BucketTotal
			revenueRaw string
		)
		if err := rows.Scan(&b.Name, &revenueRaw, &b.Pieces); err != nil {
			return nil, err
		}
		b.Revenue = helper.DecimalFromNumeric(revenueRaw)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *repository) ByDay(ctx context.Context, from, to time.Time) ([]DayTotal, error) {
	query := `
		SELECT
			date_trunc('day', o.placed_at),
			COALESCE(SUM(o.total_price), 0),
			COUNT(o.id)
		FROM orders o
		WHERE ` + rangeFilter + `
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []DayTotal
	for rows.Next() {
		var (
			d          DayTotal
			revenueRaw string
		)
		if err := rows.Scan(&d.Day, &revenueRaw, &d.Orders); err != nil {
			return nil, err
		}
		d.Revenue = helper.DecimalFromNumeric(revenueRaw)
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *repository) ItemRows(ctx context.Context, from, to time.Time) ([]ItemRow, error) {
	query := `
		SELECT
			o.order_number, o.placed_at, o.customer_name, o.status, o.payment_method,
			oi.name_snapshot, oi.collection_snapshot,
			oi.size_standard, oi.size_top, oi.size_bottom,
			oi.quantity, oi.unit_price, oi.total_price
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE ` + rangeFilter + `
		ORDER BY o.placed_at, o.order_number, oi.name_snapshot`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		var (
			it                       ItemRow
			sizeStd, sizeTop, sizeBt sql.NullString
			unitRaw, totalRaw        string
		)
		err := rows.Scan(
			&it.OrderNumber, &it.PlacedAt, &it.CustomerName, &it.Status, &it.PaymentMethod,
			&it.ProductName, &it.Collection,
			&sizeStd, &sizeTop, &sizeBt,
			&it.Quantity, &unitRaw, &totalRaw,
		)
		if err != nil {
			return nil, err
		}
		it.SizeStandard = helper.NullToString(sizeStd)
		it.SizeTop = helper.NullToString(sizeTop)
		it.SizeBottom = helper.NullToString(sizeBt)
		it.UnitPrice = helper.DecimalFromNumeric(unitRaw)
		it.TotalPrice = helper.DecimalFromNumeric(totalRaw)
		items = append(items, it)
	}
	return items, rows.Err()
}
