package detection

import (
	"SafeSphere/pkg/response"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest          = response.NewError(http.StatusBadRequest, "bad request")
	ErrUnknownProfile      = response.NewError(http.StatusBadRequest, "unknown scan profile")
	ErrTextTooLong         = response.NewError(http.StatusRequestEntityTooLarge, "text too long to scan")
	ErrSaveReport          = response.NewError(http.StatusInternalServerError, "failed to save scan report")
)
