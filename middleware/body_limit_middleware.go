package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit ограничение размера запроса, загрузка резюме проверяется отдельным лимитом
func WithBodyLimit(limit, uploadLimit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		maxSize := limit
		if strings.HasSuffix(c.Path(), "/me/resume") {
			maxSize = uploadLimit
		}
		contentLength := c.Get("Content-Length")
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > maxSize {
				return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
					"error": fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", maxSize),
				})
			}
		}

		return c.Next()
	}
}
