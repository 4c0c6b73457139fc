package apiv1

import (
	"staffing-backend/controllers"
	candidatehandler "staffing-backend/lib/candidate"
	moderationhandler "staffing-backend/lib/moderation"
	proposalhandler "staffing-backend/lib/proposal"
	"staffing-backend/middleware"
	apimodels "staffing-backend/models/api"
	candidateapimodels "staffing-backend/models/api/candidate"
	proposalapimodels "staffing-backend/models/api/proposal"

	"github.com/gofiber/fiber/v2"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("candidate", func(router fiber.Router) {
		router.Post("list", controller.candidateList)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.candidateGet)
			idRoute.Get("resume", controller.resumeLink)
			idRoute.Put("review", controller.candidateReview)
		})
	})
	app.Route("proposal", func(router fiber.Router) {
		router.Post("list", controller.proposalList)
		router.Post("", controller.propose)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.proposalGet)
			idRoute.Put("review", controller.proposalReview)
			idRoute.Get("history", controller.proposalHistory)
		})
	})
	app.Post("placement", controller.placement)

	missions := missionApiController{}
	app.Route("mission", func(router fiber.Router) {
		router.Post("list", missions.list)
		router.Get("export", missions.export)
		router.Get(":id", missions.get)
		router.Put(":id/end", missions.end)
	})
}

// @Summary Список кандидатов
// @Tags Модерация
// @Description Список кандидатов с фильтром по статусу модерации
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/candidate/list [post]
func (c *adminApiController) candidateList(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Анкета кандидата
// @Tags Модерация
// @Description Получение анкеты по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/candidate/{id} [get]
func (c *adminApiController) candidateGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения анкеты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Ссылка на резюме
// @Tags Модерация
// @Description Временная ссылка на файл резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.ResumeLink}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/candidate/{id}/resume [get]
func (c *adminApiController) resumeLink(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.GetResumeLink(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ссылки на резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Модерация анкеты
// @Tags Модерация
// @Description Одобрение или отклонение анкеты кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.ReviewData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/candidate/{id}/review [put]
func (c *adminApiController) candidateReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.ReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = moderationhandler.Instance.ReviewCandidate(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка модерации анкеты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список предложений
// @Tags Модерация
// @Description Все предложения с фильтром по статусам
// @Param	body body	 proposalapimodels.ProposalFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]proposalapimodels.ProposalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/proposal/list [post]
func (c *adminApiController) proposalList(ctx *fiber.Ctx) error {
	var payload proposalapimodels.ProposalFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := proposalhandler.Instance.ListForAdmin(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка предложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Предложить кандидата
// @Tags Модерация
// @Description Предложение кандидата на вакансию, сразу одобрено модератором
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 proposalapimodels.ProposeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/proposal [post]
func (c *adminApiController) propose(ctx *fiber.Ctx) error {
	var payload proposalapimodels.ProposeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := moderationhandler.Instance.ProposeCandidate(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания предложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Предложение по ИД
// @Tags Модерация
// @Description Получение предложения по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=proposalapimodels.ProposalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/proposal/{id} [get]
func (c *adminApiController) proposalGet(ctx *fiber.Ctx) error {
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

// @Summary Модерация предложения
// @Tags Модерация
// @Description Одобрение или отклонение предложения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 proposalapimodels.AdminReviewData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/proposal/{id}/review [put]
func (c *adminApiController) proposalReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload proposalapimodels.AdminReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = moderationhandler.Instance.ReviewProposal(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка модерации предложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary История предложения
// @Tags Модерация
// @Description Журнал решений по предложению
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]proposalapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/proposal/{id}/history [get]
func (c *adminApiController) proposalHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := proposalhandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории предложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Размещение кандидата
// @Tags Модерация
// @Description Размещение кандидата на вакансию за компанию, создается миссия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 proposalapimodels.PlacementData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/placement [post]
func (c *adminApiController) placement(ctx *fiber.Ctx) error {
	var payload proposalapimodels.PlacementData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	missionID, err := moderationhandler.Instance.PlaceCandidateDirectly(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка размещения кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(missionID))
}
