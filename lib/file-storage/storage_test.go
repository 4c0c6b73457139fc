package filestorage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	t.Run(`ResumeKey check`, func(t *testing.T) {
		require.Equal(t, "resume/c1/cv.pdf", ResumeKey("c1", "cv.pdf"))
		require.Equal(t, "resume/c1/passwd", ResumeKey("c1", "../../etc/passwd"))
		require.Equal(t, "resume/c1/resume", ResumeKey("c1", ""))
	})

	t.Run(`not configured storage check`, func(t *testing.T) {
		i := NewInstance(nil, "docs", 0)
		_, err := i.UploadResume(context.TODO(), "c1", "cv.pdf", strings.NewReader("x"), 1, "")
		require.ErrorIs(t, err, ErrNotConfigured)
		_, _, err = i.GetResumeLink(context.TODO(), "resume/c1/cv.pdf")
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run(`presigned link check`, func(t *testing.T) {
		client, err := minio.New("localhost:9000", &minio.Options{
			Creds:  credentials.NewStaticV4("access", "secret", ""),
			Secure: false,
			Region: "us-east-1",
		})
		require.Nil(t, err)
		i := NewInstance(client, "docs", 5*time.Minute)
		link, expiresAt, err := i.GetResumeLink(context.TODO(), "resume/c1/cv.pdf")
		require.Nil(t, err)
		require.Contains(t, link, "/docs/resume/c1/cv.pdf")
		require.Contains(t, link, "X-Amz-Expires=300")
		require.True(t, expiresAt.After(time.Now()))
	})
}
