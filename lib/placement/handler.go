package placementhandler

import (
	"staffing-backend/db"
	missionstore "staffing-backend/lib/mission/store"
	"staffing-backend/lib/notify"
	offerstore "staffing-backend/lib/offer/store"
	proposalstore "staffing-backend/lib/proposal/store"
	historystore "staffing-backend/lib/proposal/history-store"
	initchecker "staffing-backend/lib/utils/init-checker"
	"staffing-backend/models"
	dbmodels "staffing-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// CommitPlacement выполняется внутри транзакции принятия предложения компанией
	CommitPlacement(tx *gorm.DB, proposal dbmodels.Proposal, actorID, reason string) (missionID string, err error)
	EndMission(actor models.Actor, id string) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notify", notify.Instance,
	)
	Instance = NewInstance(db.DB, notify.Instance)
}

func NewInstance(gdb *gorm.DB, notifier notify.Provider) Provider {
	return impl{
		db:       gdb,
		notifier: notifier,
	}
}

type impl struct {
	db       *gorm.DB
	notifier notify.Provider
}

func (i impl) CommitPlacement(tx *gorm.DB, proposal dbmodels.Proposal, actorID, reason string) (missionID string, err error) {
	logger := log.
		WithField("proposal_id", proposal.ID).
		WithField("offer_id", proposal.OfferID).
		WithField("candidate_id", proposal.CandidateID)

	offerStore := offerstore.NewInstance(tx)
	offer, err := offerStore.GetByID(proposal.OfferID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения вакансии")
	}
	if offer == nil {
		return "", models.NewNotFound("вакансия не найдена")
	}
	// 1-2. вакансия занимается условным обновлением, проигравший получает ErrOfferAlreadyFilled
	err = offerStore.Place(offer.ID, proposal.CandidateID)
	if err != nil {
		return "", err
	}
	// 3.
	err = proposalstore.NewInstance(tx).SetCompanyStatus(proposal.ID, models.CompanyStatusAccepted, reason, actorID)
	if err != nil {
		return "", err
	}
	err = historystore.NewInstance(tx).Save(proposal.ID, models.TrackCompany, string(models.CompanyStatusAccepted), reason, actorID)
	if err != nil {
		return "", err
	}
	// 4.
	startDate := time.Now()
	if offer.StartDate != nil {
		startDate = *offer.StartDate
	}
	mission := dbmodels.Mission{
		ProposalID:  proposal.ID,
		CandidateID: proposal.CandidateID,
		OfferID:     proposal.OfferID,
		CompanyID:   offer.CompanyID,
		Status:      models.MissionStatusOngoing,
		StartDate:   startDate,
	}
	missionID, err = missionstore.NewInstance(tx).Create(mission)
	if err != nil {
		return "", err
	}
	logger.
		WithField("mission_id", missionID).
		Info("Кандидат размещен на вакансию")
	return missionID, nil
}

func (i impl) EndMission(actor models.Actor, id string) error {
	logger := log.
		WithField("mission_id", id).
		WithField("actor_id", actor.ID)
	rec, err := missionstore.NewInstance(i.db).GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения миссии")
	}
	if rec == nil {
		return models.NewNotFound("миссия не найдена")
	}
	if !actor.IsAdmin() && !rec.IsOwnedBy(actor.CompanyID) {
		return models.NewUnauthorized("миссия принадлежит другой компании")
	}
	if _, err = rec.Status.End(); err != nil {
		return err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		err := missionstore.NewInstance(tx).End(id, actor.ID)
		if err != nil {
			return err
		}
		return offerstore.NewInstance(tx).Close(rec.OfferID)
	})
	if err != nil {
		return err
	}
	logger.Info("Миссия завершена, вакансия переведена в архив")
	if i.notifier != nil {
		rec.Status = models.MissionStatusCompleted
		i.notifier.MissionEnded(*rec)
	}
	return nil
}
