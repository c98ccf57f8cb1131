package cart

import (
	"net/http"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
)

var (
	ErrCartNotFound = apperror.New(
		apperror.CodeNotFound,
		"cart not found",
		http.StatusNotFound,
	)

	ErrCartItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"cart item not found",
		http.StatusNotFound,
	)

	ErrInvalidQty = apperror.New(
		apperror.CodeInvalidInput,
		"quantity must be at least 1",
		http.StatusBadRequest,
	)

	ErrProductUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"product is not available",
		http.StatusUnprocessableEntity,
	)

	// Kit products need top+bottom sizes, everything else a single size.
	ErrSizeSelectionMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"size selection does not match the product type",
		http.StatusBadRequest,
	)
)
