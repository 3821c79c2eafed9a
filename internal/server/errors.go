package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/matfile/pkg/matfile"
)

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
		},
	})
}

// writeLoadError maps a matfile error to a status code.
func writeLoadError(c *echo.Context, name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return writeNotFound(c, "matrix "+name+" not found")
	case errors.Is(err, matfile.ErrTruncated),
		errors.Is(err, matfile.ErrUnknownDataType),
		errors.Is(err, matfile.ErrUnsupportedMatrixType),
		errors.Is(err, matfile.ErrTooLarge):
		return writeError(c, http.StatusUnprocessableEntity, "invalid_matfile_error", err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}
