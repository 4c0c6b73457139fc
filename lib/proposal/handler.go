package proposalhandler

import (
	"staffing-backend/db"
	candidatestore "staffing-backend/lib/candidate/store"
	"staffing-backend/lib/notify"
	offerstore "staffing-backend/lib/offer/store"
	placementhandler "staffing-backend/lib/placement"
	proposalstore "staffing-backend/lib/proposal/store"
	historystore "staffing-backend/lib/proposal/history-store"
	initchecker "staffing-backend/lib/utils/init-checker"
	"staffing-backend/models"
	proposalapimodels "staffing-backend/models/api/proposal"
	dbmodels "staffing-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	ApplyAsCandidate(userID, offerID string) (id string, err error)
	ProposeByAdmin(adminID string, data proposalapimodels.ProposeData) (id string, err error)
	AdminReview(adminID, id string, data proposalapimodels.AdminReviewData) error
	CompanyReview(companyID, userID, id string, data proposalapimodels.CompanyReviewData) error
	Get(actor models.Actor, id string) (item proposalapimodels.ProposalView, err error)
	ListForCompany(companyID string, filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error)
	ListForAdmin(filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error)
	ListForCandidate(userID string, filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error)
	History(id string) (list []proposalapimodels.HistoryView, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"placementhandler", placementhandler.Instance,
		"notify", notify.Instance,
	)
	Instance = NewInstance(db.DB, placementhandler.Instance, notify.Instance)
}

func NewInstance(gdb *gorm.DB, placement placementhandler.Provider, notifier notify.Provider) Provider {
	return impl{
		db:        gdb,
		store:     proposalstore.NewInstance(gdb),
		placement: placement,
		notifier:  notifier,
	}
}

type impl struct {
	db        *gorm.DB
	store     proposalstore.Provider
	placement placementhandler.Provider
	notifier  notify.Provider
}

func (i impl) getLogger(id, actorID string) *log.Entry {
	logger := log.WithField("proposal_id", id)
	if actorID != "" {
		logger = logger.WithField("actor_id", actorID)
	}
	return logger
}

// CreateProposal создание предложения вместе с записью в истории. Повторная пара
// кандидат/вакансия отсекается уникальным индексом и дает ErrDuplicateProposal.
func CreateProposal(tx *gorm.DB, candidate dbmodels.Candidate, offer dbmodels.Offer, origin models.ProposalOrigin, actorID string) (*dbmodels.Proposal, error) {
	rec := dbmodels.Proposal{
		CandidateID:   candidate.ID,
		OfferID:       offer.ID,
		CompanyID:     offer.CompanyID,
		Origin:        origin,
		CreatedBy:     actorID,
		AdminStatus:   models.AdminStatusPending,
		CompanyStatus: models.CompanyStatusPending,
	}
	if origin == models.OriginAdminPlacement {
		rec.AdminStatus = models.AdminStatusApproved
		rec.AdminReviewedBy = actorID
	}
	id, err := proposalstore.NewInstance(tx).Create(rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	err = historystore.NewInstance(tx).Save(id, models.TrackCreated, string(rec.AdminStatus), "", actorID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) ApplyAsCandidate(userID, offerID string) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		candidate, err := candidatestore.NewInstance(tx).GetByUserID(userID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения кандидата")
		}
		if candidate == nil {
			return models.NewNotFound("анкета кандидата не заполнена")
		}
		if !candidate.IsSelectable() {
			return models.NewInvalidTransition("анкета кандидата не одобрена модератором")
		}
		offer, err := offerstore.NewInstance(tx).GetByID(offerID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения вакансии")
		}
		if offer == nil {
			return models.NewNotFound("вакансия не найдена")
		}
		if offer.Status != models.OfferStatusActive {
			return models.NewInvalidTransition("вакансия не принимает отклики")
		}
		rec, err := CreateProposal(tx, *candidate, *offer, models.OriginCandidateApplication, userID)
		if err != nil {
			return err
		}
		id = rec.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	i.getLogger(id, userID).
		WithField("offer_id", offerID).
		Info("Кандидат откликнулся на вакансию")
	return id, nil
}

func (i impl) ProposeByAdmin(adminID string, data proposalapimodels.ProposeData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		candidate, err := candidatestore.NewInstance(tx).GetByID(data.CandidateID)
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
		if !offer.Status.IsOpen() {
			return models.NewInvalidTransition("вакансия закрыта")
		}
		rec, err := CreateProposal(tx, *candidate, *offer, models.OriginAdminPlacement, adminID)
		if err != nil {
			return err
		}
		id = rec.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	i.getLogger(id, adminID).
		WithField("offer_id", data.OfferID).
		WithField("candidate_id", data.CandidateID).
		Info("Администратор предложил кандидата на вакансию")
	return id, nil
}

func (i impl) AdminReview(adminID, id string, data proposalapimodels.AdminReviewData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	var newStatus models.AdminStatus
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := proposalstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения предложения")
		}
		if rec == nil {
			return models.NewNotFound("предложение не найдено")
		}
		newStatus, err = rec.AdminStatus.Review(data.Decision)
		if err != nil {
			return err
		}
		err = store.SetAdminStatus(id, rec.AdminStatus, newStatus, data.Reason, adminID)
		if err != nil {
			return err
		}
		return historystore.NewInstance(tx).Save(id, models.TrackAdmin, string(newStatus), data.Reason, adminID)
	})
	if err != nil {
		return err
	}
	i.getLogger(id, adminID).
		WithField("admin_status", newStatus).
		Info("Предложение рассмотрено модератором")
	i.notifyAfterCommit(id, func(rec dbmodels.Proposal) { i.notifier.ProposalAdminReviewed(rec) })
	return nil
}

func (i impl) CompanyReview(companyID, userID, id string, data proposalapimodels.CompanyReviewData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	var newStatus models.CompanyStatus
	var placed *dbmodels.Proposal
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := proposalstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения предложения")
		}
		if rec == nil {
			return models.NewNotFound("предложение не найдено")
		}
		if rec.CompanyID != companyID {
			return models.NewUnauthorized("предложение по вакансии другой компании")
		}
		newStatus, err = rec.CompanyStatus.Review(rec.AdminStatus, data.Decision)
		if err != nil {
			return err
		}
		candidate, err := candidatestore.NewInstance(tx).GetForUpdate(rec.CandidateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения кандидата")
		}
		if candidate == nil || candidate.ApprovalStatus == models.CandidateStatusRejected {
			return models.NewInvalidTransition("кандидат отклонен модератором")
		}
		if newStatus == models.CompanyStatusAccepted {
			_, err = i.placement.CommitPlacement(tx, *rec, userID, data.Reason)
			if err != nil {
				return err
			}
			placed = rec
			return nil
		}
		err = store.SetCompanyStatus(id, newStatus, data.Reason, userID)
		if err != nil {
			return err
		}
		return historystore.NewInstance(tx).Save(id, models.TrackCompany, string(newStatus), data.Reason, userID)
	})
	if err != nil {
		return err
	}
	i.getLogger(id, userID).
		WithField("company_id", companyID).
		WithField("company_status", newStatus).
		Info("Предложение рассмотрено компанией")
	if placed != nil && placed.Candidate != nil && placed.Offer != nil && i.notifier != nil {
		i.notifier.PlacementCommitted(*placed.Candidate, *placed.Offer)
	}
	i.notifyAfterCommit(id, func(rec dbmodels.Proposal) { i.notifier.ProposalCompanyReviewed(rec) })
	return nil
}

func (i impl) notifyAfterCommit(id string, send func(rec dbmodels.Proposal)) {
	if i.notifier == nil {
		return
	}
	rec, err := i.store.GetByID(id)
	if err != nil || rec == nil {
		i.getLogger(id, "").WithError(err).Warn("оповещение не отправлено, предложение не прочитано")
		return
	}
	send(*rec)
}

// Get компания видит только одобренные модератором предложения по своим вакансиям
func (i impl) Get(actor models.Actor, id string) (item proposalapimodels.ProposalView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return proposalapimodels.ProposalView{}, errors.Wrap(err, "ошибка получения предложения")
	}
	if rec == nil {
		return proposalapimodels.ProposalView{}, models.NewNotFound("предложение не найдено")
	}
	if !actor.IsAdmin() {
		if !rec.VisibleToCompany(actor.CompanyID) {
			return proposalapimodels.ProposalView{}, models.NewNotFound("предложение не найдено")
		}
		if rec.Candidate != nil && rec.Candidate.ApprovalStatus == models.CandidateStatusRejected {
			return proposalapimodels.ProposalView{}, models.NewNotFound("предложение не найдено")
		}
	}
	return proposalapimodels.ProposalConvert(*rec), nil
}

func (i impl) ListForCompany(companyID string, filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error) {
	if companyID == "" {
		return nil, 0, models.NewUnauthorized("пользователь не привязан к компании")
	}
	return i.list(proposalstore.CompanyScope(companyID), filter)
}

func (i impl) ListForAdmin(filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error) {
	return i.list(proposalstore.AdminScope(), filter)
}

func (i impl) ListForCandidate(userID string, filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error) {
	candidate, err := candidatestore.NewInstance(i.db).GetByUserID(userID)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения кандидата")
	}
	if candidate == nil {
		return nil, 0, models.NewNotFound("анкета кандидата не заполнена")
	}
	return i.list(proposalstore.CandidateScope(candidate.ID), filter)
}

func (i impl) list(scope proposalstore.Scope, filter proposalapimodels.ProposalFilter) (list []proposalapimodels.ProposalView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(scope, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(scope, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка предложений")
	}
	list = make([]proposalapimodels.ProposalView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, proposalapimodels.ProposalConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) History(id string) (list []proposalapimodels.HistoryView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения предложения")
	}
	if rec == nil {
		return nil, models.NewNotFound("предложение не найдено")
	}
	recList, err := historystore.NewInstance(i.db).List(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории предложения")
	}
	list = make([]proposalapimodels.HistoryView, 0, len(recList))
	for _, item := range recList {
		list = append(list, proposalapimodels.HistoryConvert(item))
	}
	return list, nil
}
