package voice

import (
	"SafeSphere/pkg/response"
	"net/http"
)

var (
	ErrInternalServerError  = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest           = response.NewError(http.StatusBadRequest, "bad request")
	ErrLanguageNotSupported = response.NewError(http.StatusBadRequest, "language not supported")
	ErrSaveCommand          = response.NewError(http.StatusInternalServerError, "failed to save voice command")
	ErrSessionNotFound      = response.NewError(http.StatusNotFound, "voice session not found")
)
