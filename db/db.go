package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type ConnectParams struct {
	Host         string
	Port         string
	Database     string
	User         string
	Password     string
	DebugMode    bool
	Migrate      bool
	MaxOpenConns int
}

func (p ConnectParams) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", p.Host, p.Port, p.User, p.Database, p.Password)
}

func Connect(params ConnectParams) (err error) {
	if DB != nil {
		return nil
	}
	gdb, err := Open(params.DSN(), params.DebugMode)
	if err != nil {
		return err
	}
	if params.MaxOpenConns > 0 {
		sqlDB, err := gdb.DB()
		if err != nil {
			return errors.Wrap(err, "Ошибка подключения к БД")
		}
		sqlDB.SetMaxOpenConns(params.MaxOpenConns)
	}
	if params.Migrate {
		if err = AutoMigrateDB(gdb); err != nil {
			return err
		}
	}
	DB = gdb
	log.Info("Сервис успешно подключен к БД")
	return nil
}

// Open подключение к postgres без установки глобального DB
func Open(dsn string, debugMode bool) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Ошибка подключения к БД")
	}
	if debugMode {
		gdb.Logger = logger.Default.LogMode(logger.Info)
		return gdb.Debug(), nil
	}
	return gdb, nil
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}
