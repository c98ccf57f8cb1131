package customer

import (
	"net/http"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"customer not found",
		http.StatusNotFound,
	)

	ErrCurrentPasswordRequired = apperror.New(
		apperror.CodeInvalidInput,
		"current password is required to set a new one",
		http.StatusBadRequest,
	)

	ErrWrongCurrentPassword = apperror.New(
		apperror.CodeForbidden,
		"current password does not match",
		http.StatusForbidden,
	)

	ErrProfileFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to update profile",
		http.StatusInternalServerError,
	)
)
