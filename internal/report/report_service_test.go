package report_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeReportRepo struct {
	TotalsFn          func(ctx context.Context, from, to time.Time) (report.Totals, error)
	ByCollectionFn    func(ctx context.Context, from, to time.Time) ([]report.BucketTotal, error)
	ByPaymentMethodFn func(ctx context.Context, from, to time.Time) ([]report.BucketTotal, error)
	ByDayFn           func(ctx context.Context, from, to time.Time) ([]report.DayTotal, error)
	ItemRowsFn        func(ctx context.Context, from, to time.Time) ([]report.ItemRow, error)
}

func (f *fakeReportRepo) Totals(ctx context.Context, from, to time.Time) (report.Totals, error) {
	return f.TotalsFn(ctx, from, to)
}

func (f *fakeReportRepo) ByCollection(ctx context.Context, from, to time.Time) ([]report.BucketTotal, error) {
	return f.ByCollectionFn(ctx, from, to)
}

func (f *fakeReportRepo) ByPaymentMethod(ctx context.Context, from, to time.Time) ([]report.BucketTotal, error) {
	return f.ByPaymentMethodFn(ctx, from, to)
}

func (f *fakeReportRepo) ByDay(ctx context.Context, from, to time.Time) ([]report.DayTotal, error) {
	return f.ByDayFn(ctx, from, to)
}

func (f *fakeReportRepo) ItemRows(ctx context.Context, from, to time.Time) ([]report.ItemRow, error) {
	return f.ItemRowsFn(ctx, from, to)
}

func happyRepo() *fakeReportRepo {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return &fakeReportRepo{
		TotalsFn: func(context.Context, time.Time, time.Time) (report.Totals, error) {
			return report.Totals{
				Revenue: decimal.RequireFromString("350.00"),
				Orders:  4,
				Pieces:  7,
			}, nil
		},
		ByCollectionFn: func(context.Context, time.Time, time.Time) ([]report.BucketTotal, error) {
			return []report.BucketTotal{
				{Name: "Inverno 2026", Revenue: decimal.RequireFromString("200.00"), Pieces: 4},
				{Name: "Linha Treino", Revenue: decimal.RequireFromString("150.00"), Pieces: 3},
			}, nil
		},
		ByPaymentMethodFn: func(context.Context, time.Time, time.Time) ([]report.BucketTotal, error) {
			return []report.BucketTotal{
				{Name: "PIX", Revenue: decimal.RequireFromString("250.00"), Pieces: 5},
				{Name: "PICKUP", Revenue: decimal.RequireFromString("100.00"), Pieces: 2},
			}, nil
		},
		ByDayFn: func(context.Context, time.Time, time.Time) ([]report.DayTotal, error) {
			return []report.DayTotal{
				{Day: day, Revenue: decimal.RequireFromString("350.00"), Orders: 4},
			}, nil
		},
		ItemRowsFn: func(context.Context, time.Time, time.Time) ([]report.ItemRow, error) {
			return []report.ItemRow{
				{
					OrderNumber:   "CS-1755000000-AB12",
					PlacedAt:      day.Add(14 * time.Hour),
					CustomerName:  "Pietra Martins",
					Status:        "AWAITING_PROOF",
					PaymentMethod: "PIX",
					ProductName:   "Conjunto Inverno",
					Collection:    "Inverno 2026",
					SizeTop:       "M",
					SizeBottom:    "G",
					Quantity:      2,
					UnitPrice:     decimal.RequireFromString("50.00"),
					TotalPrice:    decimal.RequireFromString("100.00"),
				},
			}, nil
		},
	}
}

func TestSummary(t *testing.T) {
	svc := report.NewService(happyRepo())

	res, err := svc.Summary(context.Background(), report.RangeQuery{From: "2026-08-01", To: "2026-08-15"})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", res.From)
	assert.Equal(t, "2026-08-15", res.To)
	assert.Equal(t, 350.0, res.Revenue)
	assert.Equal(t, 4, res.Orders)
	assert.Equal(t, 7, res.Pieces)
	assert.Equal(t, 87.5, res.AverageTicket)

	require.Len(t, res.ByCollection, 2)
	assert.Equal(t, "Inverno 2026", res.ByCollection[0].Name)
	assert.Equal(t, 200.0, res.ByCollection[0].Revenue)

	require.Len(t, res.ByDay, 1)
	assert.Equal(t, "2026-08-10", res.ByDay[0].Day)
	assert.Equal(t, 4, res.ByDay[0].Orders)
}

func TestSummaryEmptyRangeHasZeroTicket(t *testing.T) {
	repo := happyRepo()
	repo.TotalsFn = func(context.Context, time.Time, time.Time) (report.Totals, error) {
		return report.Totals{Revenue: decimal.Zero}, nil
	}
	repo.ByCollectionFn = func(context.Context, time.Time, time.Time) ([]report.BucketTotal, error) {
		return nil, nil
	}
	repo.ByPaymentMethodFn = func(context.Context, time.Time, time.Time) ([]report.BucketTotal, error) {
		return nil, nil
	}
	repo.ByDayFn = func(context.Context, time.Time, time.Time) ([]report.DayTotal, error) {
		return nil, nil
	}
	svc := report.NewService(repo)

	res, err := svc.Summary(context.Background(), report.RangeQuery{From: "2026-08-01", To: "2026-08-02"})
	require.NoError(t, err)
	assert.Zero(t, res.AverageTicket)
	assert.Empty(t, res.ByCollection)
}

func TestSummaryRangeValidation(t *testing.T) {
	svc := report.NewService(happyRepo())

	_, err := svc.Summary(context.Background(), report.RangeQuery{From: "15/08/2026"})
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	_, err = svc.Summary(context.Background(), report.RangeQuery{From: "2026-08-20", To: "2026-08-10"})
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestSummaryRepoErrorWrapped(t *testing.T) {
	repo := happyRepo()
	repo.TotalsFn = func(context.Context, time.Time, time.Time) (report.Totals, error) {
		return report.Totals{}, errors.New("db down")
	}
	svc := report.NewService(repo)

	_, err := svc.Summary(context.Background(), report.RangeQuery{From: "2026-08-01", To: "2026-08-02"})
	assert.ErrorIs(t, err, report.ErrReportFailed)
}

func TestSalesWorkbook(t *testing.T) {
	svc := report.NewService(happyRepo())

	data, filename, err := svc.SalesWorkbook(context.Background(), report.RangeQuery{From: "2026-08-01", To: "2026-08-15"})
	require.NoError(t, err)
	assert.Equal(t, "vendas_2026-08-01_2026-08-15.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Resumo Geral", "Pedidos"}, f.GetSheetList())

	title, err := f.GetCellValue("Resumo Geral", "A1")
	require.NoError(t, err)
	assert.Equal(t, "RELATÓRIO DE VENDAS - COACH STORE", title)

	revenue, err := f.GetCellValue("Resumo Geral", "B5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "350", revenue)

	orderNumber, err := f.GetCellValue("Pedidos", "A2")
	require.NoError(t, err)
	assert.Equal(t, "CS-1755000000-AB12", orderNumber)

	status, err := f.GetCellValue("Pedidos", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Aguardando comprovante", status)

	size, err := f.GetCellValue("Pedidos", "H2")
	require.NoError(t, err)
	assert.Equal(t, "Blusa M / Calça G", size)
}
