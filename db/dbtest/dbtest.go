// Package dbtest поднимает базу для тестов: sqlite в памяти или postgres в контейнере.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"staffing-backend/db"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewSQLite отдельная база в памяти на каждый тест.
// Одно соединение: транзакции выполняются последовательно, поэтому гонки
// между транзакциями здесь не воспроизводятся, для них есть NewPostgres.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
	})
	require.Nil(t, err)
	sqlDB, err := gdb.DB()
	require.Nil(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.Nil(t, db.AutoMigrateDB(gdb))
	return gdb
}

// NewPostgres postgres 16 в контейнере либо внешняя база из STRESS_TEST_PG_DSN.
// Тест пропускается, если docker недоступен. В CI нужен docker либо STRESS_TEST_PG_DSN,
// иначе проверки гонок не выполняются.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("STRESS_TEST_PG_DSN")
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		pgC, err := postgres.Run(ctx,
			"postgres:16",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(time.Minute)),
		)
		require.Nil(t, err)
		t.Cleanup(func() {
			_ = pgC.Terminate(context.Background())
		})
		dsn, err = pgC.ConnectionString(ctx, "sslmode=disable")
		require.Nil(t, err)
	}
	gdb, err := db.Open(dsn, false)
	require.Nil(t, err)
	sqlDB, err := gdb.DB()
	require.Nil(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.Nil(t, db.AutoMigrateDB(gdb))
	return gdb
}
