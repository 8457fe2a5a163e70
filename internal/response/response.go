// Package response provides helpers for consistent API responses.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Success sends a successful JSON response with the given data.
// The response will always include "error": false.
func Success(c echo.Context, data map[string]interface{}) error {
	resp := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		resp[k] = v
	}
	resp["error"] = false

	return c.JSON(http.StatusOK, resp)
}

// Error sends an error JSON response with the given status code and message.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, errorBody("", message))
}

// ErrorWithCode sends an error response with a machine-readable code, such
// as "invalid_image", next to the message.
func ErrorWithCode(c echo.Context, statusCode int, code string, message string) error {
	return c.JSON(statusCode, errorBody(code, message))
}

func errorBody(code, message string) map[string]interface{} {
	body := map[string]interface{}{
		"error":   true,
		"message": message,
	}
	if code != "" {
		body["code"] = code
	}
	return body
}

// Blob sends generated bytes with the given content type.
// Challenge output is single-use and marked no-store.
func Blob(c echo.Context, contentType string, data []byte) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, contentType, data)
}
