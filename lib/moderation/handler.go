package moderationhandler

import (
	"staffing-backend/db"
	candidatestore "staffing-backend/lib/candidate/store"
	"staffing-backend/lib/notify"
	offerstore "staffing-backend/lib/offer/store"
	placementhandler "staffing-backend/lib/placement"
	proposalhandler "staffing-backend/lib/proposal"
	proposalstore "staffing-backend/lib/proposal/store"
	historystore "staffing-backend/lib/proposal/history-store"
	initchecker "staffing-backend/lib/utils/init-checker"
	"staffing-backend/models"
	candidateapimodels "staffing-backend/models/api/candidate"
	proposalapimodels "staffing-backend/models/api/proposal"
	dbmodels "staffing-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Provider действия администратора платформы
type Provider interface {
	ReviewCandidate(adminID, id string, data candidateapimodels.ReviewData) error
	ReviewProposal(adminID, id string, data proposalapimodels.AdminReviewData) error
	ProposeCandidate(adminID string, data proposalapimodels.ProposeData) (id string, err error)
	PlaceCandidateDirectly(adminID string, data proposalapimodels.PlacementData) (missionID string, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"proposalhandler", proposalhandler.Instance,
		"placementhandler", placementhandler.Instance,
		"notify", notify.Instance,
	)
	Instance = NewInstance(db.DB, proposalhandler.Instance, placementhandler.Instance, notify.Instance)
}

func NewInstance(gdb *gorm.DB, proposals proposalhandler.Provider, placement placementhandler.Provider, notifier notify.Provider) Provider {
	return impl{
		db:        gdb,
		proposals: proposals,
		placement: placement,
		notifier:  notifier,
	}
}

type impl struct {
	db        *gorm.DB
	proposals proposalhandler.Provider
	placement placementhandler.Provider
	notifier  notify.Provider
}

func (i impl) ReviewCandidate(adminID, id string, data candidateapimodels.ReviewData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	store := candidatestore.NewInstance(i.db)
	rec, err := store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return models.NewNotFound("кандидат не найден")
	}
	newStatus, err := rec.ApprovalStatus.Review(data.Decision)
	if err != nil {
		return err
	}
	reason := ""
	if newStatus == models.CandidateStatusRejected {
		reason = data.Reason
	}
	err = store.SetApprovalStatus(id, rec.ApprovalStatus, newStatus, reason, adminID)
	if err != nil {
		return err
	}
	log.
		WithField("candidate_id", id).
		WithField("actor_id", adminID).
		WithField("approval_status", newStatus).
		Info("Анкета кандидата рассмотрена")
	if i.notifier != nil {
		rec.ApprovalStatus = newStatus
		rec.RejectReason = reason
		i.notifier.CandidateReviewed(*rec)
	}
	return nil
}

func (i impl) ReviewProposal(adminID, id string, data proposalapimodels.AdminReviewData) error {
	return i.proposals.AdminReview(adminID, id, data)
}

func (i impl) ProposeCandidate(adminID string, data proposalapimodels.ProposeData) (id string, err error) {
	return i.proposals.ProposeByAdmin(adminID, data)
}

// PlaceCandidateDirectly оформление размещения за компанию. Создание предложения и
// размещение выполняются одной транзакцией: при ошибке размещения предложение не остается.
func (i impl) PlaceCandidateDirectly(adminID string, data proposalapimodels.PlacementData) (missionID string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	var placed *dbmodels.Proposal
	err = i.db.Transaction(func(tx *gorm.DB) error {
		candidate, err := candidatestore.NewInstance(tx).GetForUpdate(data.CandidateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения кандидата")
		}
		if candidate == nil {
			return models.NewNotFound("кандидат не найден")
		}
		if candidate.ApprovalStatus == models.CandidateStatusRejected {
			return models.NewInvalidTransition("кандидат отклонен модератором")
		}
		offer, err := offerstore.NewInstance(tx).GetByID(data.OfferID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения вакансии")
		}
		if offer == nil {
			return models.NewNotFound("вакансия не найдена")
		}
		proposal, err := i.approvedProposal(tx, adminID, *candidate, *offer)
		if err != nil {
			return err
		}
		missionID, err = i.placement.CommitPlacement(tx, *proposal, adminID, data.Note)
		if err != nil {
			return err
		}
		proposal.Candidate = candidate
		proposal.Offer = offer
		placed = proposal
		return nil
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("offer_id", data.OfferID).
		WithField("candidate_id", data.CandidateID).
		WithField("mission_id", missionID).
		WithField("actor_id", adminID).
		Info("Администратор разместил кандидата на вакансию")
	if i.notifier != nil && placed != nil {
		i.notifier.PlacementCommitted(*placed.Candidate, *placed.Offer)
	}
	return missionID, nil
}

// approvedProposal предложение по паре в статусе "одобрено модератором, ждет компанию"
func (i impl) approvedProposal(tx *gorm.DB, adminID string, candidate dbmodels.Candidate, offer dbmodels.Offer) (*dbmodels.Proposal, error) {
	store := proposalstore.NewInstance(tx)
	rec, err := store.GetByPair(candidate.ID, offer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения предложения")
	}
	if rec == nil {
		return proposalhandler.CreateProposal(tx, candidate, offer, models.OriginAdminPlacement, adminID)
	}
	switch rec.AdminStatus {
	case models.AdminStatusPending:
		err = store.SetAdminStatus(rec.ID, models.AdminStatusPending, models.AdminStatusApproved, "", adminID)
		if err != nil {
			return nil, err
		}
		err = historystore.NewInstance(tx).Save(rec.ID, models.TrackAdmin, string(models.AdminStatusApproved), "", adminID)
		if err != nil {
			return nil, err
		}
		rec.AdminStatus = models.AdminStatusApproved
	case models.AdminStatusRejected:
		return nil, models.NewInvalidTransition("предложение отклонено модератором")
	}
	if rec.CompanyStatus != models.CompanyStatusPending {
		return nil, models.NewInvalidTransition("предложение уже рассмотрено компанией")
	}
	return rec, nil
}
