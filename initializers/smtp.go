package initializers

import (
	"staffing-backend/config"
	"staffing-backend/lib/smtp"
)

func InitSmtp() {
	err := smtp.Connect(smtp.Settings{
		User:       config.Conf.Smtp.User,
		Password:   config.Conf.Smtp.Password,
		Host:       config.Conf.Smtp.Host,
		Port:       config.Conf.Smtp.Port,
		Sender:     config.Conf.Smtp.Sender,
		TLSEnabled: *config.Conf.Smtp.TLSEnabled,
	})
	if err != nil {
		panic(err.Error())
	}
}
