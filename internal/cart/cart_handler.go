package cart

import (
	"net/http"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

// GET /carts/detail
func (h *Handler) Detail(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	res, err := h.service.Detail(c.Request.Context(), userID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "", res)
}

// GET /carts/count
func (h *Handler) Count(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	count, err := h.service.Count(c.Request.Context(), userID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "", CartCountResponse{Count: count})
}

// POST /carts/items
func (h *Handler) AddItem(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if err := h.service.AddItem(c.Request.Context(), userID, req); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, "Item added", nil)
}

// PATCH /carts/items/:itemId
func (h *Handler) UpdateQty(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if err := h.service.UpdateQty(c.Request.Context(), userID, c.Param("itemId"), req); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "Quantity updated", nil)
}

// POST /carts/items/:itemId/increment
func (h *Handler) Increment(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	if err := h.service.Increment(c.Request.Context(), userID, c.Param("itemId")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "", nil)
}

// POST /carts/items/:itemId/decrement
func (h *Handler) Decrement(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	if err := h.service.Decrement(c.Request.Context(), userID, c.Param("itemId")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "", nil)
}

// DELETE /carts/items/:itemId
func (h *Handler) DeleteItem(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	if err := h.service.DeleteItem(c.Request.Context(), userID, c.Param("itemId")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "Item removed", nil)
}

// DELETE /carts
func (h *Handler) Clear(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, "Cart cleared", nil)
}
