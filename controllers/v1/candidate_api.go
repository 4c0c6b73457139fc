package apiv1

import (
	"staffing-backend/controllers"
	candidatehandler "staffing-backend/lib/candidate"
	offerhandler "staffing-backend/lib/offer"
	proposalhandler "staffing-backend/lib/proposal"
	"staffing-backend/middleware"
	apimodels "staffing-backend/models/api"
	candidateapimodels "staffing-backend/models/api/candidate"
	offerapimodels "staffing-backend/models/api/offer"
	proposalapimodels "staffing-backend/models/api/proposal"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

// InitCandidateApiRouters кабинет кандидата
func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Post("register", controller.register)
	app.Route("me", func(router fiber.Router) {
		router.Get("", controller.me)
		router.Put("", controller.updateProfile)
		router.Put("resume", controller.uploadResume)
	})
	app.Route("offers", func(router fiber.Router) {
		router.Post("list", controller.offerList)
		router.Post(":id/apply", controller.apply)
	})
	app.Post("proposals/list", controller.proposalList)
}

// @Summary Регистрация анкеты
// @Tags Кандидат
// @Description Регистрация анкеты кандидата, анкета уходит на модерацию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.RegisterData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/register [post]
func (c *candidateApiController) register(ctx *fiber.Ctx) error {
	var payload candidateapimodels.RegisterData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := candidatehandler.Instance.Register(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка регистрации кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Своя анкета
// @Tags Кандидат
// @Description Своя анкета
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/me [get]
func (c *candidateApiController) me(ctx *fiber.Ctx) error {
	resp, err := candidatehandler.Instance.GetByUser(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения анкеты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение анкеты
// @Tags Кандидат
// @Description Изменение анкеты. Статус модерации и резюме через этот метод не меняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.ProfileUpdate	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/me [put]
func (c *candidateApiController) updateProfile(ctx *fiber.Ctx) error {
	payload := candidateapimodels.ProfileUpdate{}
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	profile, err := candidatehandler.Instance.GetByUser(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения анкеты")
	}
	err = candidatehandler.Instance.UpdateProfile(userID, profile.ID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения анкеты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузка резюме
// @Tags Кандидат
// @Description Загрузка файла резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file				formData	file	true	"файл резюме"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/me/resume [put]
func (c *candidateApiController) uploadResume(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла резюме")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()

	err = candidatehandler.Instance.UploadResume(ctx.UserContext(), middleware.GetUserID(ctx), file.Filename, buffer, file.Size, file.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Активные вакансии
// @Tags Кандидат
// @Description Список активных вакансий
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 offerapimodels.OfferFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]offerapimodels.OfferView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/offers/list [post]
func (c *candidateApiController) offerList(ctx *fiber.Ctx) error {
	var payload offerapimodels.OfferFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := offerhandler.Instance.ListActive(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вакансий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Отклик на вакансию
// @Tags Кандидат
// @Description Отклик на вакансию, предложение уходит на модерацию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "offer ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/offers/{id}/apply [post]
func (c *candidateApiController) apply(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	proposalID, err := proposalhandler.Instance.ApplyAsCandidate(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклика на вакансию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(proposalID))
}

// @Summary Свои предложения
// @Tags Кандидат
// @Description Список своих предложений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 proposalapimodels.ProposalFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]proposalapimodels.ProposalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/proposals/list [post]
func (c *candidateApiController) proposalList(ctx *fiber.Ctx) error {
	var payload proposalapimodels.ProposalFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := proposalhandler.Instance.ListForCandidate(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка предложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
