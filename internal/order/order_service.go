package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	autherrors "github.com/Picancianmartin/UniformesCoachSite/internal/auth/errors"
	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"
	"github.com/Picancianmartin/UniformesCoachSite/internal/outbox"
	"github.com/Picancianmartin/UniformesCoachSite/internal/pix"
	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
	"github.com/Picancianmartin/UniformesCoachSite/internal/product"
	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=order_service.go -destination=../mock/order/order_service_mock.go -package=mock
type Service interface {
	// Customer Actions
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (CheckoutResponse, error)
	List(ctx context.Context, userID string, status string, page, limit int) ([]OrderResponse, int64, error)
	Detail(ctx context.Context, userID, orderID string) (OrderResponse, error)
	Cancel(ctx context.Context, userID, orderID string) (OrderResponse, error)
	PixQR(ctx context.Context, userID, orderID string, size int) ([]byte, error)

	// Admin Actions
	ListAdmin(ctx context.Context, status, search string, page, limit int) ([]OrderResponse, int64, error)
	DetailAdmin(ctx context.Context, orderID string) (OrderResponse, error)
	UpdateStatusByAdmin(ctx context.Context, orderID, nextStatus string) (OrderResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	outboxRepo  outbox.Repository
	cartSvc     cart.Service
	productRepo product.Repository
	logger      *zap.Logger
}

type Deps struct {
	DB          *sql.DB
	Repo        Repository
	OutboxRepo  outbox.Repository
	CartSvc     cart.Service
	ProductRepo product.Repository
	Logger      *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("order repository cannot be nil")
	}
	if deps.OutboxRepo == nil {
		panic("outbox repository cannot be nil")
	}
	if deps.CartSvc == nil {
		panic("cart service cannot be nil")
	}
	if deps.ProductRepo == nil {
		panic("product repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		db:          deps.DB,
		repo:        deps.Repo,
		outboxRepo:  deps.OutboxRepo,
		cartSvc:     deps.CartSvc,
		productRepo: deps.ProductRepo,
		logger:      deps.Logger,
	}
}

// merchantFromEnv holds the static Pix receiver. The key has no fallback;
// without it Pix checkouts fail with PAYMENT_CODE_FAILED instead of
// emitting a code pointing at nobody.
func merchantFromEnv() (key, name, city string) {
	key = os.Getenv("PIX_KEY")

	name = os.Getenv("PIX_MERCHANT_NAME")
	if name == "" {
		name = "Coach Store"
	}

	city = os.Getenv("PIX_MERCHANT_CITY")
	if city == "" {
		city = "Sorocaba"
	}
	return key, name, city
}

// pixTxIDFrom derives the transaction id carried in field 62-05 from the
// order number.
func pixTxIDFrom(orderNumber string) string {
	txid := strings.ReplaceAll(orderNumber, "-", "")
	if len(txid) > 25 {
		txid = txid[:25]
	}
	return txid
}

func (s *service) buildPixPayment(orderNumber string, total decimal.Decimal) (*PixPaymentResponse, error) {
	key, name, city := merchantFromEnv()
	txid := pixTxIDFrom(orderNumber)

	payload, err := pix.Payload(pix.Transaction{
		Key:          key,
		MerchantName: name,
		MerchantCity: city,
		Amount:       total,
		TxID:         txid,
	})
	if err != nil {
		return nil, apperror.Wrap(ErrPaymentCodeFailed, err)
	}

	return &PixPaymentResponse{
		Payload: payload,
		TxID:    txid,
	}, nil
}

func (s *service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (CheckoutResponse, error) {
	logger := s.logger.With(zap.String("user_id", userID))

	uid, err := uuid.Parse(userID)
	if err != nil {
		return CheckoutResponse{}, autherrors.ErrInvalidUserID
	}

	method := strings.ToUpper(req.PaymentMethod)
	if method != PaymentMethodPix && method != PaymentMethodPickup {
		return CheckoutResponse{}, ErrInvalidPaymentMethod
	}

	// 1. Load the cart
	snapshots, err := s.cartSvc.Snapshots(ctx, userID)
	if err != nil {
		logger.Error("failed to fetch cart snapshots", zap.Error(err))
		return CheckoutResponse{}, err
	}
	if len(snapshots) == 0 {
		return CheckoutResponse{}, ErrCartEmpty
	}

	// 2. Total
	total := decimal.Zero
	for _, snap := range snapshots {
		total = total.Add(snap.UnitPrice.Mul(decimal.NewFromInt(int64(snap.Quantity))))
	}

	// 3. Order number + initial status
	orderNumber := fmt.Sprintf("CS-%d-%s", time.Now().Unix(), strings.ToUpper(uuid.New().String()[:4]))
	logger = logger.With(zap.String("order_number", orderNumber))

	status := StatusPending
	var pixPayment *PixPaymentResponse
	if method == PaymentMethodPix {
		status = StatusAwaitingProof

		// Built before the transaction so a bad merchant config fails fast
		// with nothing written.
		pixPayment, err = s.buildPixPayment(orderNumber, total)
		if err != nil {
			logger.Error("failed to build pix payload", zap.Error(err))
			return CheckoutResponse{}, err
		}
	}

	customerName, customerPhone, err := s.repo.GetCustomer(ctx, uid)
	if err != nil {
		logger.Error("failed to fetch customer info", zap.Error(err))
		return CheckoutResponse{}, err
	}

	// 4. One transaction: order + items + stock decrement + outbox. Any
	// failure rolls the whole checkout back.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			logger.Warn("checkout transaction rolled back")
		}
	}()

	qtx := s.repo.WithTx(tx)

	var txid string
	if pixPayment != nil {
		txid = pixPayment.TxID
	}

	order, err := qtx.CreateOrder(ctx, Order{
		OrderNumber:   orderNumber,
		UserID:        uid,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Status:        status,
		PaymentMethod: method,
		PixTxID:       txid,
		Note:          strings.TrimSpace(req.Note),
		TotalPrice:    total,
	})
	if err != nil {
		logger.Error("failed to create order record", zap.Error(err))
		return CheckoutResponse{}, err
	}

	lines := make(map[uuid.UUID][]stock.LineItem)
	for _, snap := range snapshots {
		item := snapshotToItem(order.ID, snap)
		if err := qtx.CreateItem(ctx, item); err != nil {
			logger.Error("failed to create order item",
				zap.String("product_id", snap.ProductID.String()),
				zap.Error(err),
			)
			return CheckoutResponse{}, err
		}

		lines[snap.ProductID] = append(lines[snap.ProductID], stock.LineItem{
			ProductID:   snap.ProductID.String(),
			Quantity:    snap.Quantity,
			UnitPrice:   snap.UnitPrice,
			Fulfillment: snap.Fulfillment,
			Sizes:       snap.Sizes,
		})
	}

	// 5. Decrement stock under row locks. Products are locked in a fixed
	// order so concurrent checkouts cannot deadlock each other.
	productIDs := make([]uuid.UUID, 0, len(lines))
	for pid := range lines {
		productIDs = append(productIDs, pid)
	}
	sort.Slice(productIDs, func(i, j int) bool {
		return productIDs[i].String() < productIDs[j].String()
	})

	for _, pid := range productIDs {
		table, err := s.productRepo.GetStockForUpdate(ctx, tx, pid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				logger.Warn("product vanished before checkout", zap.String("product_id", pid.String()))
				return CheckoutResponse{}, cart.ErrProductUnavailable
			}
			logger.Error("failed to lock product stock", zap.Error(err))
			return CheckoutResponse{}, err
		}

		updated := stock.Apply(table, lines[pid])
		if err := s.productRepo.UpdateStockTx(ctx, tx, pid, updated); err != nil {
			logger.Error("failed to write product stock", zap.Error(err))
			return CheckoutResponse{}, err
		}
	}

	// 6. Outbox event: the consumer clears the cart once this commits.
	payload, _ := json.Marshal(map[string]string{
		"user_id":  userID,
		"order_id": order.ID.String(),
	})
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outbox.Event{
		AggregateType: "ORDER",
		AggregateID:   order.ID,
		EventType:     outbox.EventDeleteCart,
		Payload:       payload,
	}); err != nil {
		logger.Error("failed to create outbox event", zap.Error(err))
		return CheckoutResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit checkout", zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed
	}
	committed = true

	logger.Info("checkout success",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_method", method),
	)

	if pixPayment != nil {
		pixPayment.QRImage = fmt.Sprintf("/api/v1/orders/%s/pix-qr", order.ID)
	}

	items := make([]OrderItemResponse, 0, len(snapshots))
	for _, snap := range snapshots {
		items = append(items, snapshotToItemResponse(snap))
	}

	res := mapOrderToResponse(order)
	res.Items = items
	return CheckoutResponse{Order: res, Pix: pixPayment}, nil
}

func snapshotToItem(orderID uuid.UUID, snap cart.Snapshot) Item {
	item := Item{
		OrderID:            orderID,
		ProductID:          snap.ProductID,
		NameSnapshot:       snap.Name,
		CollectionSnapshot: snap.Collection,
		UnitPrice:          snap.UnitPrice,
		Quantity:           snap.Quantity,
		TotalPrice:         snap.UnitPrice.Mul(decimal.NewFromInt(int64(snap.Quantity))),
		IsKit:              snap.IsKit,
		ReadyToShip:        snap.Fulfillment == stock.FulfillmentReadyToShip,
	}

	switch sel := snap.Sizes.(type) {
	case stock.StandardSelection:
		item.SizeStandard = sel.Size
	case stock.KitSelection:
		item.SizeTop = sel.Top
		item.SizeBottom = sel.Bottom
	}
	return item
}

func snapshotToItemResponse(snap cart.Snapshot) OrderItemResponse {
	res := OrderItemResponse{
		ProductID:   snap.ProductID.String(),
		Name:        snap.Name,
		Collection:  snap.Collection,
		UnitPrice:   snap.UnitPrice.InexactFloat64(),
		Qty:         snap.Quantity,
		TotalPrice:  snap.UnitPrice.Mul(decimal.NewFromInt(int64(snap.Quantity))).InexactFloat64(),
		IsKit:       snap.IsKit,
		ReadyToShip: snap.Fulfillment == stock.FulfillmentReadyToShip,
	}

	switch sel := snap.Sizes.(type) {
	case stock.StandardSelection:
		res.Sizes.Standard = sel.Size
	case stock.KitSelection:
		res.Sizes.Top = sel.Top
		res.Sizes.Bottom = sel.Bottom
	}
	return res
}

func mapOrderToResponse(o Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		StatusLabel:   StatusLabel(o.Status),
		PaymentMethod: o.PaymentMethod,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Note:          o.Note,
		TotalPrice:    o.TotalPrice.InexactFloat64(),
		PlacedAt:      o.PlacedAt,
		CancelledAt:   o.CancelledAt,
	}
}

func itemToResponse(it Item) OrderItemResponse {
	return OrderItemResponse{
		ProductID:   it.ProductID.String(),
		Name:        it.NameSnapshot,
		Collection:  it.CollectionSnapshot,
		UnitPrice:   it.UnitPrice.InexactFloat64(),
		Qty:         it.Quantity,
		TotalPrice:  it.TotalPrice.InexactFloat64(),
		IsKit:       it.IsKit,
		ReadyToShip: it.ReadyToShip,
		Sizes: SizesResponse{
			Standard: it.SizeStandard,
			Top:      it.SizeTop,
			Bottom:   it.SizeBottom,
		},
	}
}

func (s *service) List(ctx context.Context, userID string, status string, page, limit int) ([]OrderResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, autherrors.ErrInvalidUserID
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	orders, total, err := s.repo.List(ctx, ListFilter{
		UserID: uid,
		Status: strings.ToUpper(strings.TrimSpace(status)),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, mapOrderToResponse(o))
	}
	return res, total, nil
}

// ownedOrder loads an order and verifies it belongs to the caller.
func (s *service) ownedOrder(ctx context.Context, userID, orderID string) (Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Order{}, autherrors.ErrInvalidUserID
	}
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return Order{}, ErrInvalidOrderID
	}

	o, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, err
	}
	if o.UserID != uid {
		// Hidden, not forbidden: customers cannot probe other orders.
		return Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) Detail(ctx context.Context, userID, orderID string) (OrderResponse, error) {
	o, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return OrderResponse{}, err
	}
	return s.withItems(ctx, o)
}

func (s *service) DetailAdmin(ctx context.Context, orderID string) (OrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return OrderResponse{}, ErrInvalidOrderID
	}

	o, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, ErrOrderNotFound
		}
		return OrderResponse{}, err
	}
	return s.withItems(ctx, o)
}

func (s *service) withItems(ctx context.Context, o Order) (OrderResponse, error) {
	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return OrderResponse{}, err
	}

	res := mapOrderToResponse(o)
	res.Items = make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		res.Items = append(res.Items, itemToResponse(it))
	}
	return res, nil
}

func (s *service) Cancel(ctx context.Context, userID, orderID string) (OrderResponse, error) {
	o, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	if !cancellableByCustomer(o.Status) {
		return OrderResponse{}, ErrCannotCancel
	}

	updated, err := s.repo.UpdateStatus(ctx, o.ID, StatusCancelled)
	if err != nil {
		return OrderResponse{}, err
	}

	s.logger.Info("order cancelled by customer",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
	)
	return mapOrderToResponse(updated), nil
}

// PixQR re-renders the payment QR for a pix order. The payload is
// deterministic, so nothing beyond the order itself needs to be stored.
func (s *service) PixQR(ctx context.Context, userID, orderID string, size int) ([]byte, error) {
	o, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if o.PaymentMethod != PaymentMethodPix {
		return nil, ErrNotPixOrder
	}
	if o.Status == StatusCancelled {
		return nil, ErrCannotCancel
	}

	key, name, city := merchantFromEnv()
	payload, err := pix.Payload(pix.Transaction{
		Key:          key,
		MerchantName: name,
		MerchantCity: city,
		Amount:       o.TotalPrice,
		TxID:         o.PixTxID,
	})
	if err != nil {
		return nil, apperror.Wrap(ErrPaymentCodeFailed, err)
	}

	if size < 128 || size > 1024 {
		size = 512
	}
	png, err := pix.QRCodePNG(payload, size)
	if err != nil {
		return nil, apperror.Wrap(ErrPaymentCodeFailed, err)
	}
	return png, nil
}

func (s *service) ListAdmin(ctx context.Context, status, search string, page, limit int) ([]OrderResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.repo.ListAdmin(ctx, ListFilter{
		Status: strings.ToUpper(strings.TrimSpace(status)),
		Search: strings.TrimSpace(search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, mapOrderToResponse(o))
	}
	return res, total, nil
}

func (s *service) UpdateStatusByAdmin(ctx context.Context, orderID, nextStatus string) (OrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return OrderResponse{}, ErrInvalidOrderID
	}

	next := strings.ToUpper(strings.TrimSpace(nextStatus))
	if _, known := statusTransitions[next]; !known {
		return OrderResponse{}, ErrInvalidStatusTransition
	}

	o, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, ErrOrderNotFound
		}
		return OrderResponse{}, err
	}

	if !CanTransition(o.Status, next) {
		return OrderResponse{}, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, oid, next)
	if err != nil {
		return OrderResponse{}, err
	}

	s.logger.Info("order status updated",
		zap.String("order_number", o.OrderNumber),
		zap.String("from", o.Status),
		zap.String("to", next),
	)
	return mapOrderToResponse(updated), nil
}
