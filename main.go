package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"staffing-backend/config"
	apiv1 "staffing-backend/controllers/v1"
	"staffing-backend/fiberlog"
	"staffing-backend/initializers"
	"staffing-backend/lib/notify"
	"staffing-backend/middleware"
	"staffing-backend/models"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const (
	bodyLimit       = 1 * 1024 * 1024
	resumeBodyLimit = 20 * 1024 * 1024
	swaggerFile     = "./docs/swagger.json"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: resumeBodyLimit,
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.ErrNotify(config.Conf.NotifyBot.ErrAddr))
	apiV1.Use(middleware.WithBodyLimit(bodyLimit, resumeBodyLimit))
	apiv1.InitPermissionsApiRouters(apiV1)

	//кандидат
	candidate := fiber.New()
	apiV1.Mount("/candidate", candidate)
	candidate.Use(middleware.AuthorizationRequired())
	candidate.Use(middleware.RoleRequired(models.CandidateRole))
	candidate.Use(middleware.RbacMiddleware())
	apiv1.InitCandidateApiRouters(candidate)

	//space
	space := fiber.New()
	apiV1.Mount("/space", space)
	space.Use(middleware.AuthorizationRequired())
	space.Use(middleware.RoleRequired(models.CompanyRole))
	space.Use(middleware.RbacMiddleware())
	apiv1.InitOfferApiRouters(space)
	apiv1.InitProposalApiRouters(space)
	apiv1.InitMissionApiRouters(space)

	//админка
	adminPanel := fiber.New()
	apiV1.Mount("/admin_panel", adminPanel)
	adminPanel.Use(middleware.AuthorizationRequired())
	adminPanel.Use(middleware.RoleRequired(models.AdminRole))
	adminPanel.Use(middleware.RbacMiddleware())
	apiv1.InitAdminApiRouters(adminPanel)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		notify.Instance.Wait()
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
