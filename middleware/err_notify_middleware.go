package middleware

import (
	"encoding/json"
	"net/http"
	botnotify "staffing-backend/lib/utils/bot-notify"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// ErrNotify отправка ответов 5xx в бот оповещений, при пустом addr ничего не делает
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" {
			return err
		}
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		body := string(c.Response().Body())
		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Warn("ошибка разбора ответа для оповещения")
		}

		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		actorID := GetUserID(c)

		msg := data.Message
		if msg == "" {
			msg = body
		}

		apiErr := botnotify.ApiError{
			Code:    statusCode,
			Method:  method,
			Path:    path,
			ActorID: actorID,
			Message: msg,
		}
		go func() {
			if reqErr := botnotify.SendApiError(addr, apiErr); reqErr != nil {
				log.WithError(reqErr).Warn("ошибка отправки оповещения об ошибке")
			}
		}()
		return err
	}
}
