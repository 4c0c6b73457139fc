package initializers

import (
	"context"
	"staffing-backend/config"
	"staffing-backend/fiberlog"
	candidatehandler "staffing-backend/lib/candidate"
	xlsexport "staffing-backend/lib/export/xls"
	missionhandler "staffing-backend/lib/mission"
	moderationhandler "staffing-backend/lib/moderation"
	backlogworker "staffing-backend/lib/moderation/backlog-worker"
	"staffing-backend/lib/notify"
	offerhandler "staffing-backend/lib/offer"
	placementhandler "staffing-backend/lib/placement"
	proposalhandler "staffing-backend/lib/proposal"
	"staffing-backend/lib/rbac"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	// порядок важен: обработчики берут зависимости из Instance уже созданных
	notify.NewHandler()
	xlsexport.NewHandler()
	candidatehandler.NewHandler()
	offerhandler.NewHandler()
	placementhandler.NewHandler()
	proposalhandler.NewHandler()
	missionhandler.NewHandler()
	moderationhandler.NewHandler()
	rbac.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Сводка очереди модерации
	backlogworker.StartWorker(ctx)
}
