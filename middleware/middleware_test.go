package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"staffing-backend/config"
	"staffing-backend/lib/rbac"
	authutils "staffing-backend/lib/utils/auth-utils"
	"staffing-backend/models"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setup(t *testing.T) *fiber.App {
	t.Helper()
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = testSecret
	rbac.Instance = rbac.NewInstance()

	app := fiber.New()
	space := fiber.New()
	app.Mount("/api/v1/space", space)
	space.Use(AuthorizationRequired())
	space.Use(RoleRequired(models.CompanyRole))
	space.Use(RbacMiddleware())
	space.Get("mission/export", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetCompanyID(ctx))
	})

	// группа без проверки роли, доступ решает только rbac
	open := fiber.New()
	app.Mount("/api/v1/candidate", open)
	open.Use(AuthorizationRequired())
	open.Use(RbacMiddleware())
	open.Post("offers/list", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserID(ctx))
	})
	return app
}

func token(t *testing.T, actor models.Actor) string {
	t.Helper()
	tokenString, err := authutils.GetToken(testSecret, 60, actor)
	require.Nil(t, err)
	return "Bearer " + tokenString
}

func call(t *testing.T, app *fiber.App, method, path, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.Nil(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	app := setup(t)
	company := models.Actor{ID: "u1", Role: models.CompanyRole, CompanyID: "c1"}

	t.Run(`no token check`, func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/api/v1/space/mission/export", "")
		require.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run(`bad signature check`, func(t *testing.T) {
		tokenString, err := authutils.GetToken("other-secret", 60, company)
		require.Nil(t, err)
		status, _ := call(t, app, http.MethodGet, "/api/v1/space/mission/export", "Bearer "+tokenString)
		require.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run(`expired token check`, func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/api/v1/space/mission/export", func() string {
			tokenString, err := authutils.GetToken(testSecret, -60, company)
			require.Nil(t, err)
			return "Bearer " + tokenString
		}())
		require.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run(`company role check`, func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/v1/space/mission/export", token(t, company))
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "c1", body)
	})

	t.Run(`wrong role check`, func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/api/v1/space/mission/export", token(t, models.Actor{ID: "u2", Role: models.CandidateRole}))
		require.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run(`company without company id check`, func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/api/v1/space/mission/export", token(t, models.Actor{ID: "u3", Role: models.CompanyRole}))
		require.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run(`rbac check`, func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/v1/candidate/offers/list", token(t, models.Actor{ID: "u4", Role: models.CandidateRole}))
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "u4", body)

		status, body = call(t, app, http.MethodPost, "/api/v1/candidate/offers/list", token(t, company))
		require.Equal(t, fiber.StatusForbidden, status)
		require.Contains(t, body, "RBAC_FORBIDDEN")
	})
}

func TestBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10, 100))
	handler := func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	}
	app.Put("/candidate/me", handler)
	app.Put("/candidate/me/resume", handler)

	send := func(path string, size int) int {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(strings.Repeat("x", size)))
		resp, err := app.Test(req)
		require.Nil(t, err)
		return resp.StatusCode
	}

	t.Run(`regular limit check`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, send("/candidate/me", 10))
		require.Equal(t, fiber.StatusRequestEntityTooLarge, send("/candidate/me", 11))
	})

	t.Run(`upload limit check`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, send("/candidate/me/resume", 50))
		require.Equal(t, fiber.StatusRequestEntityTooLarge, send("/candidate/me/resume", 101))
	})
}

func TestErrNotify(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]interface{}{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		received <- payload
	}))
	defer srv.Close()

	app := fiber.New()
	app.Use(ErrNotify(srv.URL))
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "ошибка бд"})
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "fail", "message": "конфликт"})
	})

	t.Run(`client error not reported check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		select {
		case <-received:
			t.Fatal("4xx reported")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run(`server error reported check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		select {
		case payload := <-received:
			require.Equal(t, "ошибка бд", payload["error"])
			require.Equal(t, "/fail", payload["path"])
		case <-time.After(5 * time.Second):
			t.Fatal("error not reported")
		}
	})
}
