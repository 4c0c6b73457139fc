package apiv1

import (
	"staffing-backend/controllers"
	candidatehandler "staffing-backend/lib/candidate"
	proposalhandler "staffing-backend/lib/proposal"
	"staffing-backend/middleware"
	apimodels "staffing-backend/models/api"
	candidateapimodels "staffing-backend/models/api/candidate"
	proposalapimodels "staffing-backend/models/api/proposal"

	"github.com/gofiber/fiber/v2"
)

type proposalApiController struct {
	controllers.BaseAPIController
}

func InitProposalApiRouters(app *fiber.App) {
	controller := proposalApiController{}
	app.Route("proposal", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("review", controller.review)
		})
	})
	app.Post("candidate/list", controller.candidateList)
}

// @Summary Список
// @Tags Предложение
// @Description Предложения по вакансиям компании, только одобренные модератором
// @Param	body body	 proposalapimodels.ProposalFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]proposalapimodels.ProposalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/proposal/list [post]
func (c *proposalApiController) list(ctx *fiber.Ctx) error {
	var payload proposalapimodels.ProposalFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := proposalhandler.Instance.ListForCompany(middleware.GetCompanyID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка предложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Предложение
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=proposalapimodels.ProposalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/proposal/{id} [get]
func (c *proposalApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := proposalhandler.Instance.Get(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения предложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Решение компании
// @Tags Предложение
// @Description Принять (кандидат размещается на вакансию) или отклонить предложение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 proposalapimodels.CompanyReviewData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/proposal/{id}/review [put]
func (c *proposalApiController) review(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload proposalapimodels.CompanyReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = proposalhandler.Instance.CompanyReview(middleware.GetCompanyID(ctx), middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка рассмотрения предложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Одобренные кандидаты
// @Tags Предложение
// @Description Список одобренных модератором кандидатов
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/candidate/list [post]
func (c *proposalApiController) candidateList(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.ListApproved(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
