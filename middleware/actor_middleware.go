package middleware

import (
	"slices"
	authutils "staffing-backend/lib/utils/auth-utils"
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(authutils.GetClaims(ctx), "sub")
}

func GetRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(authutils.GetStringClaim(authutils.GetClaims(ctx), "role"))
}

func GetCompanyID(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(authutils.GetClaims(ctx), "company")
}

func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		ID:        GetUserID(ctx),
		Role:      GetRole(ctx),
		CompanyID: GetCompanyID(ctx),
	}
}

// RoleRequired доступ к группе маршрутов только для перечисленных ролей
func RoleRequired(roles ...models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor := GetActor(ctx)
		if actor.ID == "" || !slices.Contains(roles, actor.Role) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		if actor.Role == models.CompanyRole && actor.CompanyID == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("пользователь не привязан к компании"))
		}
		return ctx.Next()
	}
}
