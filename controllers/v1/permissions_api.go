package apiv1

import (
	"staffing-backend/controllers"
	"staffing-backend/lib/rbac"
	"staffing-backend/middleware"
	apimodels "staffing-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type permissionsApiController struct {
	controllers.BaseAPIController
}

func InitPermissionsApiRouters(app *fiber.App) {
	controller := permissionsApiController{}
	app.Get("permissions", middleware.AuthorizationRequired(), controller.get)
}

// @Summary Права текущего пользователя
// @Tags Права
// @Description Разделы и действия, доступные роли пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=map[string][]string}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/permissions [get]
func (c *permissionsApiController) get(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rbac.Instance.GetPermissions(middleware.GetRole(ctx))))
}
