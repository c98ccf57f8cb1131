package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=report_service.go -destination=../mock/report/report_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, q RangeQuery) (SummaryResponse, error)
	SalesWorkbook(ctx context.Context, q RangeQuery) (data []byte, filename string, err error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// parseRange turns from/to query strings into a half-open UTC interval.
// Defaults: to = today, from = to minus 29 days, so the bare endpoint
// reports the last 30 days.
func parseRange(q RangeQuery) (from, to time.Time, err error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	to = today
	if q.To != "" {
		to, err = time.Parse(dateLayout, q.To)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
	}

	from = to.AddDate(0, 0, -29)
	if q.From != "" {
		from, err = time.Parse(dateLayout, q.From)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}

	// to is inclusive in the API, exclusive in the SQL filter.
	return from, to.AddDate(0, 0, 1), nil
}

func (s *service) Summary(ctx context.Context, q RangeQuery) (SummaryResponse, error) {
	from, toExcl, err := parseRange(q)
	if err != nil {
		return SummaryResponse{}, err
	}

	totals, err := s.repo.Totals(ctx, from, toExcl)
	if err != nil {
		return SummaryResponse{}, apperror.Wrap(ErrReportFailed, err)
	}
	byCollection, err := s.repo.ByCollection(ctx, from, toExcl)
	if err != nil {
		return SummaryResponse{}, apperror.Wrap(ErrReportFailed, err)
	}
	byPayment, err := s.repo.ByPaymentMethod(ctx, from, toExcl)
	if err != nil {
		return SummaryResponse{}, apperror.Wrap(ErrReportFailed, err)
	}
	byDay, err := s.repo.ByDay(ctx, from, toExcl)
	if err != nil {
		return SummaryResponse{}, apperror.Wrap(ErrReportFailed, err)
	}

	res := SummaryResponse{
		From:            from.Format(dateLayout),
		To:              toExcl.AddDate(0, 0, -1).Format(dateLayout),
		Revenue:         totals.Revenue.InexactFloat64(),
		Orders:          totals.Orders,
		Pieces:          totals.Pieces,
		AverageTicket:   averageTicket(totals).InexactFloat64(),
		ByCollection:    make([]BucketResponse, 0, len(byCollection)),
		ByPaymentMethod: make([]BucketResponse, 0, len(byPayment)),
		ByDay:           make([]DayResponse, 0, len(byDay)),
	}
	for _, b := range byCollection {
		res.ByCollection = append(res.ByCollection, bucketToResponse(b))
	}
	for _, b := range byPayment {
		res.ByPaymentMethod = append(res.ByPaymentMethod, bucketToResponse(b))
	}
	for _, d := range byDay {
		res.ByDay = append(res.ByDay, DayResponse{
			Day:     d.Day.Format(dateLayout),
			Revenue: d.Revenue.InexactFloat64(),
			Orders:  d.Orders,
		})
	}
	return res, nil
}

func (s *service) SalesWorkbook(ctx context.Context, q RangeQuery) ([]byte, string, error) {
	from, toExcl, err := parseRange(q)
	if err != nil {
		return nil, "", err
	}

	totals, err := s.repo.Totals(ctx, from, toExcl)
	if err != nil {
		return nil, "", apperror.Wrap(ErrReportFailed, err)
	}
	byCollection, err := s.repo.ByCollection(ctx, from, toExcl)
	if err != nil {
		return nil, "", apperror.Wrap(ErrReportFailed, err)
	}
	byPayment, err := s.repo.ByPaymentMethod(ctx, from, toExcl)
	if err != nil {
		return nil, "", apperror.Wrap(ErrReportFailed, err)
	}
	items, err := s.repo.ItemRows(ctx, from, toExcl)
	if err != nil {
		return nil, "", apperror.Wrap(ErrReportFailed, err)
	}

	toIncl := toExcl.AddDate(0, 0, -1)
	data, err := buildWorkbook(workbookInput{
		From:         from,
		To:           toIncl,
		Totals:       totals,
		ByCollection: byCollection,
		ByPayment:    byPayment,
		Items:        items,
	})
	if err != nil {
		return nil, "", apperror.Wrap(ErrReportFailed, err)
	}

	filename := fmt.Sprintf("vendas_%s_%s.xlsx", from.Format(dateLayout), toIncl.Format(dateLayout))
	return data, filename, nil
}

func averageTicket(t Totals) decimal.Decimal {
	if t.Orders == 0 {
		return decimal.Zero
	}
	return t.Revenue.Div(decimal.NewFromInt(int64(t.Orders))).Round(2)
}

func bucketToResponse(b BucketTotal) BucketResponse {
	return BucketResponse{
		Name:    b.Name,
		Revenue: b.Revenue.InexactFloat64(),
		Pieces:  b.Pieces,
	}
}
