package apiv1

import (
	"fmt"
	"staffing-backend/controllers"
	missionhandler "staffing-backend/lib/mission"
	placementhandler "staffing-backend/lib/placement"
	"staffing-backend/middleware"
	apimodels "staffing-backend/models/api"
	missionapimodels "staffing-backend/models/api/mission"
	"time"

	"github.com/gofiber/fiber/v2"
)

type missionApiController struct {
	controllers.BaseAPIController
}

// InitMissionApiRouters миссии компании. Админка использует те же обработчики, без привязки к компании
func InitMissionApiRouters(app *fiber.App) {
	controller := missionApiController{}
	app.Route("mission", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("end", controller.end)
			idRoute.Put("rate", controller.rate)
		})
	})
}

// @Summary Список
// @Tags Миссия
// @Description Список миссий
// @Param	body body	 missionapimodels.MissionFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]missionapimodels.MissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/mission/list [post]
func (c *missionApiController) list(ctx *fiber.Ctx) error {
	var payload missionapimodels.MissionFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := missionhandler.Instance.List(middleware.GetCompanyID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка миссий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Миссия
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=missionapimodels.MissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/mission/{id} [get]
func (c *missionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := missionhandler.Instance.Get(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения миссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Завершение
// @Tags Миссия
// @Description Завершение миссии, вакансия переводится в архив
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/mission/{id}/end [put]
func (c *missionApiController) end(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = placementhandler.Instance.EndMission(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка завершения миссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Оценка
// @Tags Миссия
// @Description Оценка завершенной миссии от 1 до 5, повторная оценка перезаписывает прежнюю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 missionapimodels.RateData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/mission/{id}/rate [put]
func (c *missionApiController) rate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload missionapimodels.RateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = missionhandler.Instance.Rate(middleware.GetCompanyID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка оценки миссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка в Excel
// @Tags Миссия
// @Description Выгрузка миссий в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/mission/export [get]
func (c *missionApiController) export(ctx *fiber.Ctx) error {
	data, err := missionhandler.Instance.Export(middleware.GetCompanyID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки миссий в Excel")
	}
	fileName := fmt.Sprintf("missions-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
