package backlogworker

import (
	"context"
	"fmt"
	"staffing-backend/config"
	"staffing-backend/db"
	candidatestore "staffing-backend/lib/candidate/store"
	proposalstore "staffing-backend/lib/proposal/store"
	"staffing-backend/lib/smtp"
	baseworker "staffing-backend/lib/utils/base-worker"
	"staffing-backend/lib/utils/helpers"
	"staffing-backend/models"
	candidateapimodels "staffing-backend/models/api/candidate"
	proposalapimodels "staffing-backend/models/api/proposal"
	"time"

	"gorm.io/gorm"
)

// StartWorker периодическая сводка очереди модерации
func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Moderation.DigestIntervalMin) * time.Minute
	i := NewInstance(db.DB, smtp.Instance, config.Conf.Moderation.DigestEmail, interval)
	go i.Run(ctx, i.Handle)
}

func NewInstance(gdb *gorm.DB, mailer smtp.Provider, recipient string, interval time.Duration) *Impl {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Impl{
		BaseImpl:       *baseworker.NewInstance("ModerationBacklogWorker", 30*time.Second, interval),
		candidateStore: candidatestore.NewInstance(gdb),
		proposalStore:  proposalstore.NewInstance(gdb),
		mailer:         mailer,
		recipient:      recipient,
	}
}

type Impl struct {
	baseworker.BaseImpl
	candidateStore candidatestore.Provider
	proposalStore  proposalstore.Provider
	mailer         smtp.Provider
	recipient      string
}

type Backlog struct {
	Candidates int64
	Proposals  int64
}

func (b Backlog) IsEmpty() bool {
	return b.Candidates == 0 && b.Proposals == 0
}

func (b Backlog) String() string {
	return fmt.Sprintf("Ожидают модерации:\r\nанкет кандидатов: %v\r\nпредложений: %v", b.Candidates, b.Proposals)
}

func (i Impl) Count() (Backlog, error) {
	candidates, err := i.candidateStore.ListCount(candidateapimodels.CandidateFilter{Status: models.CandidateStatusPending})
	if err != nil {
		return Backlog{}, err
	}
	proposals, err := i.proposalStore.ListCount(proposalstore.AdminScope(), proposalapimodels.ProposalFilter{AdminStatus: models.AdminStatusPending})
	if err != nil {
		return Backlog{}, err
	}
	return Backlog{Candidates: candidates, Proposals: proposals}, nil
}

func (i Impl) Handle(ctx context.Context) {
	logger := i.GetLogger()
	backlog, err := i.Count()
	if err != nil {
		logger.WithError(err).Error("ошибка подсчета очереди модерации")
		return
	}
	logger.
		WithField("pending_candidates", backlog.Candidates).
		WithField("pending_proposals", backlog.Proposals).
		Info("очередь модерации")
	if backlog.IsEmpty() || i.mailer == nil || i.recipient == "" || helpers.IsContextDone(ctx) {
		return
	}
	if err = i.mailer.SendEMail(i.recipient, "Очередь модерации", backlog.String()); err != nil {
		logger.WithError(err).Warn("ошибка отправки сводки модерации")
	}
}
