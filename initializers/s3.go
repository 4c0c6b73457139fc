package initializers

import (
	"context"
	"staffing-backend/config"
	filestorage "staffing-backend/lib/file-storage"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// InitS3 хранилище резюме. Без S3_ENDPOINT сервис работает, но загрузка резюме недоступна
func InitS3(ctx context.Context) {
	linkTTL := time.Duration(config.Conf.S3.LinkTTLMin) * time.Minute
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, загрузка резюме недоступна")
		filestorage.NewHandler(nil, config.Conf.S3.BucketName, linkTTL)
		return
	}
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		filestorage.NewHandler(nil, config.Conf.S3.BucketName, linkTTL)
		return
	}
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName, linkTTL)

	// Проверка соединения
	if err = filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет недоступен")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
