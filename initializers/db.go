package initializers

import (
	"staffing-backend/config"
	"staffing-backend/db"
)

func InitDBConnection() {
	err := db.Connect(db.ConnectParams{
		Host:         config.Conf.Database.Host,
		Port:         config.Conf.Database.Port,
		Database:     config.Conf.Database.Name,
		User:         config.Conf.Database.User,
		Password:     config.Conf.Database.Password,
		DebugMode:    *config.Conf.Database.DebugMode,
		Migrate:      *config.Conf.Database.MigrateOnStart,
		MaxOpenConns: config.Conf.Database.MaxOpenConns,
	})
	if err != nil {
		panic(err.Error())
	}
}
