package filestorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider хранилище документов кандидатов (резюме)
type Provider interface {
	UploadResume(ctx context.Context, candidateID, fileName string, reader io.Reader, size int64, contentType string) (key string, err error)
	GetResumeLink(ctx context.Context, key string) (link string, expiresAt time.Time, err error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider

var ErrNotConfigured = errors.New("хранилище документов не настроено")

func NewHandler(s3client *minio.Client, bucketName string, linkTTL time.Duration) {
	Instance = NewInstance(s3client, bucketName, linkTTL)
}

func NewInstance(s3client *minio.Client, bucketName string, linkTTL time.Duration) Provider {
	if linkTTL <= 0 {
		linkTTL = 15 * time.Minute
	}
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
		linkTTL:    linkTTL,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
	linkTTL    time.Duration
}

func (i impl) UploadResume(ctx context.Context, candidateID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if i.s3client == nil {
		return "", ErrNotConfigured
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := ResumeKey(candidateID, fileName)
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки резюме")
	}
	log.
		WithField("candidate_id", candidateID).
		WithField("key", key).
		Info("резюме загружено в хранилище")
	return key, nil
}

func (i impl) GetResumeLink(ctx context.Context, key string) (string, time.Time, error) {
	if i.s3client == nil {
		return "", time.Time{}, ErrNotConfigured
	}
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	expiresAt := time.Now().Add(i.linkTTL)
	link, err := i.s3client.PresignedGetObject(ctx, i.bucketName, key, i.linkTTL, reqParams)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "ошибка получения ссылки на резюме")
	}
	return link.String(), expiresAt, nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	if i.s3client == nil {
		return ErrNotConfigured
	}
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	return nil
}

// ResumeKey ключ объекта: resume/<candidate>/<имя файла>
func ResumeKey(candidateID, fileName string) string {
	name := path.Base(path.Clean("/" + fileName))
	if name == "/" || name == "." {
		name = "resume"
	}
	return path.Join("resume", candidateID, name)
}
