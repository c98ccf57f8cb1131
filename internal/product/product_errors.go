package product

import (
	"net/http"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid product id format",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"product not found",
		http.StatusNotFound,
	)

	ErrInvalidPrice = apperror.New(
		apperror.CodeInvalidInput,
		"price must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidStockBucket = apperror.New(
		apperror.CodeInvalidInput,
		"stock bucket must be standard, top or bottom",
		http.StatusBadRequest,
	)

	ErrKitStockBucket = apperror.New(
		apperror.CodeInvalidInput,
		"kit products stock top and bottom buckets, other products the standard bucket",
		http.StatusBadRequest,
	)

	ErrNegativeStock = apperror.New(
		apperror.CodeInvalidInput,
		"stock counts cannot be negative",
		http.StatusBadRequest,
	)
)
