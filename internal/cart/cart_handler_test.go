package cart_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// ==================== FAKE SERVICE ====================

type fakeCartService struct {
	DetailFn     func(ctx context.Context, userID string) (cart.CartDetailResponse, error)
	CountFn      func(ctx context.Context, userID string) (int64, error)
	AddItemFn    func(ctx context.Context, userID string, req cart.AddItemRequest) error
	UpdateQtyFn  func(ctx context.Context, userID, itemID string, req cart.UpdateQtyRequest) error
	IncrementFn  func(ctx context.Context, userID, itemID string) error
	DecrementFn  func(ctx context.Context, userID, itemID string) error
	DeleteItemFn func(ctx context.Context, userID, itemID string) error
	ClearFn      func(ctx context.Context, userID string) error
	SnapshotsFn  func(ctx context.Context, userID string) ([]cart.Snapshot, error)
}

func (f *fakeCartService) Detail(ctx context.Context, userID string) (cart.CartDetailResponse, error) {
	return f.DetailFn(ctx, userID)
}
func (f *fakeCartService) Count(ctx context.Context, userID string) (int64, error) {
	return f.CountFn(ctx, userID)
}
func (f *fakeCartService) AddItem(ctx context.Context, userID string, req cart.AddItemRequest) error {
	return f.AddItemFn(ctx, userID, req)
}
func (f *fakeCartService) UpdateQty(ctx context.Context, userID, itemID string, req cart.UpdateQtyRequest) error {
	return f.UpdateQtyFn(ctx, userID, itemID, req)
}
func (f *fakeCartService) Increment(ctx context.Context, userID, itemID string) error {
	return f.IncrementFn(ctx, userID, itemID)
}
func (f *fakeCartService) Decrement(ctx context.Context, userID, itemID string) error {
	return f.DecrementFn(ctx, userID, itemID)
}
func (f *fakeCartService) DeleteItem(ctx context.Context, userID, itemID string) error {
	return f.DeleteItemFn(ctx, userID, itemID)
}
func (f *fakeCartService) Clear(ctx context.Context, userID string) error {
	return f.ClearFn(ctx, userID)
}
func (f *fakeCartService) Snapshots(ctx context.Context, userID string) ([]cart.Snapshot, error) {
	return f.SnapshotsFn(ctx, userID)
}

// ==================== HELPERS ====================

func performRequest(h *cart.Handler, register func(*gin.Engine, *cart.Handler), req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for AuthMiddleware: requests act as a fixed user.
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", "11111111-1111-1111-1111-111111111111")
	})
	register(r, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== TEST CASES ====================

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotReq cart.AddItemRequest
		svc := &fakeCartService{
			AddItemFn: func(_ context.Context, userID string, req cart.AddItemRequest) error {
				assert.Equal(t, "11111111-1111-1111-1111-111111111111", userID)
				gotReq = req
				return nil
			},
		}

		body := `{"productId":"22222222-2222-2222-2222-222222222222","qty":2,"size":"G"}`
		req := httptest.NewRequest(http.MethodPost, "/carts/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := performRequest(cart.NewHandler(svc), func(r *gin.Engine, h *cart.Handler) {
			r.POST("/carts/items", h.AddItem)
		}, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 2, gotReq.Qty)
		assert.Equal(t, "G", gotReq.Size)
	})

	t.Run("invalid_body", func(t *testing.T) {
		svc := &fakeCartService{}

		req := httptest.NewRequest(http.MethodPost, "/carts/items", strings.NewReader(`{"qty":0}`))
		req.Header.Set("Content-Type", "application/json")

		w := performRequest(cart.NewHandler(svc), func(r *gin.Engine, h *cart.Handler) {
			r.POST("/carts/items", h.AddItem)
		}, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service_error_maps_to_http", func(t *testing.T) {
		svc := &fakeCartService{
			AddItemFn: func(_ context.Context, _ string, _ cart.AddItemRequest) error {
				return cart.ErrSizeSelectionMismatch
			},
		}

		body := `{"productId":"22222222-2222-2222-2222-222222222222","qty":1,"sizeTop":"M"}`
		req := httptest.NewRequest(http.MethodPost, "/carts/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := performRequest(cart.NewHandler(svc), func(r *gin.Engine, h *cart.Handler) {
			r.POST("/carts/items", h.AddItem)
		}, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "size selection")
	})
}

func TestCartHandler_Detail(t *testing.T) {
	svc := &fakeCartService{
		DetailFn: func(_ context.Context, userID string) (cart.CartDetailResponse, error) {
			return cart.CartDetailResponse{
				Items:      []cart.CartItemResponse{{Name: "Camisa Treino", Qty: 2}},
				TotalItems: 2,
				TotalPrice: 179.8,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/carts/detail", nil)
	w := performRequest(cart.NewHandler(svc), func(r *gin.Engine, h *cart.Handler) {
		r.GET("/carts/detail", h.Detail)
	}, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Camisa Treino")
	assert.Contains(t, w.Body.String(), `"totalItems":2`)
}
