package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	send := func(err error) (int, apimodels.Response) {
		app := fiber.New()
		app.Get("/", func(ctx *fiber.Ctx) error {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обработки")
		})
		resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Nil(t, testErr)
		defer resp.Body.Close()
		body := apimodels.Response{}
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	t.Run(`workflow errors check`, func(t *testing.T) {
		cases := map[error]int{
			models.ErrNotFound:           fiber.StatusNotFound,
			models.ErrInvalidTransition:  fiber.StatusConflict,
			models.ErrDuplicateProposal:  fiber.StatusConflict,
			models.ErrOfferAlreadyFilled: fiber.StatusConflict,
			models.ErrInvalidRating:      fiber.StatusBadRequest,
			models.ErrValidation:         fiber.StatusBadRequest,
			models.ErrUnauthorized:       fiber.StatusForbidden,
		}
		for err, expected := range cases {
			status, body := send(err)
			require.Equal(t, expected, status, err.Error())
			require.Equal(t, "fail", body.Status)
		}
	})

	t.Run(`wrapped workflow error check`, func(t *testing.T) {
		status, body := send(errors.Wrap(models.NewInvalidTransition("миссия уже завершена"), "завершение миссии"))
		require.Equal(t, fiber.StatusConflict, status)
		require.Equal(t, "миссия уже завершена", body.Message)
	})

	t.Run(`infrastructure error check`, func(t *testing.T) {
		status, body := send(errors.New("connection refused"))
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Equal(t, "Ошибка обработки", body.Message)
	})
}
