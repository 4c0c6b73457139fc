package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
}

type Settings struct {
	User       string
	Password   string
	Host       string
	Port       string
	Sender     string
	TLSEnabled bool
}

func Connect(settings Settings) error {
	if settings.Sender == "" {
		settings.Sender = settings.User
	}
	Instance = &impl{
		settings: settings,
	}
	return nil
}

type impl struct {
	settings Settings
}

func (i impl) configured() bool {
	return i.settings.User != "" && i.settings.Host != "" && i.settings.Port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.
		WithField("sender", i.settings.Sender).
		WithField("recipient", to)
	if !i.configured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	auth := sasl.NewPlainClient("", i.settings.User, i.settings.Password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n%s\r\n%s\r\n", i.settings.Sender, to, subject, mimeHeaders, message))

	addr := i.settings.Host + ":" + i.settings.Port
	if i.settings.TLSEnabled {
		err = smtp.SendMailTLS(addr, auth, i.settings.Sender, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, i.settings.Sender, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}
