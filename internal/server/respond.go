package server

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

const (
	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	mimeOctetStream = "application/octet-stream"
)

func writeJSON(c *echo.Context, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeBytes(c, status, echo.MIMEApplicationJSON, data)
}

func writeBytes(c *echo.Context, status int, contentType string, data []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.WriteHeader(status)
	_, err := res.Write(data)
	return err
}

func writeOK(c *echo.Context, v any) error {
	return writeJSON(c, http.StatusOK, v)
}
