package order

import (
	"net/http"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
)

var (
	ErrInvalidOrderID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid order id format",
		http.StatusBadRequest,
	)

	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"order not found",
		http.StatusNotFound,
	)

	ErrCartEmpty = apperror.New(
		apperror.CodeInvalidState,
		"cart is empty",
		http.StatusBadRequest,
	)

	ErrInvalidPaymentMethod = apperror.New(
		apperror.CodeInvalidInput,
		"payment method must be PIX or PICKUP",
		http.StatusBadRequest,
	)

	ErrPaymentCodeFailed = apperror.New(
		"PAYMENT_CODE_FAILED",
		"could not build the payment code",
		http.StatusUnprocessableEntity,
	)

	ErrCannotCancel = apperror.New(
		apperror.CodeInvalidState,
		"order can no longer be cancelled",
		http.StatusBadRequest,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid status transition",
		http.StatusBadRequest,
	)

	ErrNotPixOrder = apperror.New(
		apperror.CodeInvalidState,
		"order has no pix payment",
		http.StatusBadRequest,
	)

	ErrOrderFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to place order",
		http.StatusInternalServerError,
	)
)
