package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(svc Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("order.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.handler")
	}
	return &Handler{service: svc, rdb: rdb, logger: l}
}

// ==================== CUSTOMER ENDPOINTS ====================

// POST /orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated", nil)
		return
	}

	// Release the idempotency lock whatever happens; only a success below
	// fills the response cache.
	lockKey, _ := c.Get("idempotency_lock_key")
	defer func() {
		if lockKey != nil && h.rdb != nil {
			h.rdb.Del(c.Request.Context(), lockKey.(string))
		}
	}()

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("checkout validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Error("checkout failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if cacheKey, exists := c.Get("idempotency_cache_key"); exists && h.rdb != nil {
		jsonData, _ := json.Marshal(res)
		h.rdb.Set(c.Request.Context(), cacheKey.(string), jsonData, 24*time.Hour)
	}

	response.Success(c, http.StatusCreated, "Order placed", res)
}

// GET /orders
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	data, total, err := h.service.List(c.Request.Context(), userID, status, page, limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "", data, response.NewPagination(page, limit, total))
}

// GET /orders/:id
func (h *Handler) Detail(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	res, err := h.service.Detail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "", res)
}

// PATCH /orders/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	res, err := h.service.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "Order cancelled", res)
}

// GET /orders/:id/pix-qr
func (h *Handler) PixQR(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "512"))

	png, err := h.service.PixQR(c.Request.Context(), userID, c.Param("id"), size)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// ==================== ADMIN ENDPOINTS ====================

// GET /admin/orders
func (h *Handler) ListAdmin(c *gin.Context) {
	status := c.Query("status")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	data, total, err := h.service.ListAdmin(c.Request.Context(), status, search, page, limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "", data, response.NewPagination(page, limit, total))
}

// GET /admin/orders/:id
func (h *Handler) DetailAdmin(c *gin.Context) {
	res, err := h.service.DetailAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "", res)
}

// PATCH /admin/orders/:id/status
func (h *Handler) UpdateStatusByAdmin(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	res, err := h.service.UpdateStatusByAdmin(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "Status updated", res)
}
