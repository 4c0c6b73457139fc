package controllers

import (
	"staffing-backend/middleware"
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("actor_id", userID)
	}
	return logger
}

var workflowHttpStatus = map[models.ErrorCode]int{
	models.CodeNotFound:           fiber.StatusNotFound,
	models.CodeInvalidTransition:  fiber.StatusConflict,
	models.CodeDuplicateProposal:  fiber.StatusConflict,
	models.CodeOfferAlreadyFilled: fiber.StatusConflict,
	models.CodeInvalidRating:      fiber.StatusBadRequest,
	models.CodeValidation:         fiber.StatusBadRequest,
	models.CodeUnauthorized:       fiber.StatusForbidden,
}

// SendError бизнес-ошибки отдаются с их сообщением, остальные логируются и отдаются как 500
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if wfErr := models.WorkflowErrorFrom(err); wfErr != nil {
		if status, ok := workflowHttpStatus[wfErr.Code]; ok {
			return ctx.Status(status).JSON(apimodels.NewError(wfErr.Message))
		}
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
