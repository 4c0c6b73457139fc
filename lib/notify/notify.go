// Package notify оповещения участников о смене статусов. Отправка идет после
// фиксации транзакции и никогда не влияет на результат операции.
package notify

import (
	"fmt"
	"staffing-backend/lib/smtp"
	"staffing-backend/models"
	dbmodels "staffing-backend/models/db"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CandidateReviewed(rec dbmodels.Candidate)
	ProposalAdminReviewed(rec dbmodels.Proposal)
	ProposalCompanyReviewed(rec dbmodels.Proposal)
	PlacementCommitted(candidate dbmodels.Candidate, offer dbmodels.Offer)
	MissionEnded(rec dbmodels.Mission)
	MissionRated(rec dbmodels.Mission)
	// Wait ожидание отправки всех писем, используется при остановке сервиса
	Wait()
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(smtp.Instance)
}

// NewInstance при mailer == nil оповещения не отправляются
func NewInstance(mailer smtp.Provider) Provider {
	return &impl{
		mailer: mailer,
	}
}

type impl struct {
	mailer smtp.Provider
	wg     sync.WaitGroup
}

func (i *impl) CandidateReviewed(rec dbmodels.Candidate) {
	msg := fmt.Sprintf("Здравствуйте, %v!\r\nСтатус вашей анкеты: %v.", rec.FirstName, rec.ApprovalStatus.ToHuman())
	if rec.RejectReason != "" {
		msg += fmt.Sprintf("\r\nКомментарий модератора: %v", rec.RejectReason)
	}
	i.send(rec.Email, "Модерация анкеты", msg)
}

func (i *impl) ProposalAdminReviewed(rec dbmodels.Proposal) {
	if rec.Candidate == nil {
		return
	}
	msg := fmt.Sprintf("Предложение по вакансии %q: %v.", offerTitle(rec.Offer), rec.AdminStatus.ToHuman())
	if rec.AdminReason != "" {
		msg += fmt.Sprintf("\r\nКомментарий: %v", rec.AdminReason)
	}
	i.send(rec.Candidate.Email, "Модерация предложения", msg)
}

func (i *impl) ProposalCompanyReviewed(rec dbmodels.Proposal) {
	if rec.Candidate == nil {
		return
	}
	msg := fmt.Sprintf("Предложение по вакансии %q: %v.", offerTitle(rec.Offer), rec.CompanyStatus.ToHuman())
	if rec.CompanyReason != "" {
		msg += fmt.Sprintf("\r\nКомментарий компании: %v", rec.CompanyReason)
	}
	i.send(rec.Candidate.Email, "Решение компании", msg)
}

func (i *impl) PlacementCommitted(candidate dbmodels.Candidate, offer dbmodels.Offer) {
	i.send(candidate.Email, "Вы приняты на вакансию",
		fmt.Sprintf("Здравствуйте, %v!\r\nКомпания приняла вас на вакансию %q.", candidate.FirstName, offer.Title))
	i.send(offer.ContactEmail, "Вакансия закрыта",
		fmt.Sprintf("Вакансия %q закрыта кандидатом %v.", offer.Title, candidate.GetFullName()))
}

func (i *impl) MissionEnded(rec dbmodels.Mission) {
	if rec.Candidate == nil {
		return
	}
	i.send(rec.Candidate.Email, "Миссия завершена",
		fmt.Sprintf("Миссия по вакансии %q завершена.", offerTitle(rec.Offer)))
}

func (i *impl) MissionRated(rec dbmodels.Mission) {
	if rec.Candidate == nil || rec.Rating == nil {
		return
	}
	i.send(rec.Candidate.Email, "Оценка миссии",
		fmt.Sprintf("Компания оценила миссию по вакансии %q: %v из %v.", offerTitle(rec.Offer), *rec.Rating, models.MaxRating))
}

func (i *impl) Wait() {
	i.wg.Wait()
}

func (i *impl) send(to, subject, message string) {
	if i.mailer == nil || to == "" {
		return
	}
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		if err := i.mailer.SendEMail(to, subject, message); err != nil {
			log.WithError(err).
				WithField("recipient", to).
				WithField("subject", subject).
				Warn("ошибка отправки оповещения")
		}
	}()
}

func offerTitle(offer *dbmodels.Offer) string {
	if offer == nil {
		return ""
	}
	return offer.Title
}
