package report

import (
	"net/http"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"
)

var (
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"invalid report range, use from/to as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrReportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to build report",
		http.StatusInternalServerError,
	)
)
