package fiberlog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagLatency, TagBody, TagResBody},
	}))
	app.Post("/offer/list", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success"})
	})
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail"})
	})

	t.Run(`success request check`, func(t *testing.T) {
		hook.Reset()
		req := httptest.NewRequest(http.MethodPost, "/offer/list", strings.NewReader(`{"page":1}`))
		req.Header.Set("Content-Type", "application/json")
		_, err := app.Test(req)
		require.Nil(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "запрос api", entry.Message)
		require.Equal(t, "/offer/list", entry.Data[TagPath])
		require.Equal(t, fiber.StatusOK, entry.Data[TagStatus])
		require.Equal(t, `{"page":1}`, entry.Data[TagBody])
		require.Contains(t, entry.Data[TagResBody], "success")
		require.NotEmpty(t, entry.Data[TagLatency])
	})

	t.Run(`server error check`, func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
		require.Nil(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, "ошибка запроса api", entry.Message)
		_, hasBody := entry.Data[TagBody]
		require.False(t, hasBody)
	})

	t.Run(`long body truncated check`, func(t *testing.T) {
		require.Len(t, truncate([]byte(strings.Repeat("a", maxBodyBytes+10))), maxBodyBytes+3)
		require.Equal(t, "abc", truncate([]byte("abc")))
	})
}
