package candidatehandler

import (
	"context"
	"io"
	filestorage "staffing-backend/lib/file-storage"
	"time"
)

type storageMock struct {
	lastKey string
}

func (s *storageMock) UploadResume(ctx context.Context, candidateID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	s.lastKey = filestorage.ResumeKey(candidateID, fileName)
	return s.lastKey, nil
}

func (s *storageMock) GetResumeLink(ctx context.Context, key string) (string, time.Time, error) {
	return "https://storage.local/" + key, time.Now().Add(time.Minute), nil
}

func (s *storageMock) MakeBucket(ctx context.Context) error {
	return nil
}
