package proposalstore

import (
	"staffing-backend/db"
	"staffing-backend/models"
	proposalapimodels "staffing-backend/models/api/proposal"
	dbmodels "staffing-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Proposal) (id string, err error)
	GetByID(id string) (rec *dbmodels.Proposal, err error)
	GetByPair(candidateID, offerID string) (rec *dbmodels.Proposal, err error)
	Update(id string, updMap map[string]interface{}) error
	SetAdminStatus(id string, from, to models.AdminStatus, reason, actorID string) error
	SetCompanyStatus(id string, to models.CompanyStatus, reason, actorID string) error
	ListCount(scope Scope, filter proposalapimodels.ProposalFilter) (count int64, err error)
	List(scope Scope, filter proposalapimodels.ProposalFilter) (list []dbmodels.Proposal, err error)
}

// Scope чьими глазами смотрим на список предложений
type Scope struct {
	CompanyID   string // только одобренные модератором предложения по вакансиям компании
	CandidateID string // предложения одного кандидата
}

func CompanyScope(companyID string) Scope {
	return Scope{CompanyID: companyID}
}

func CandidateScope(candidateID string) Scope {
	return Scope{CandidateID: candidateID}
}

func AdminScope() Scope {
	return Scope{}
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Proposal) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		if db.IsDuplicateErr(err) {
			return "", models.ErrDuplicateProposal
		}
		return "", errors.Wrap(err, "ошибка создания предложения")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Proposal, error) {
	rec := dbmodels.Proposal{}
	err := i.db.
		Model(&dbmodels.Proposal{}).
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByPair(candidateID, offerID string) (*dbmodels.Proposal, error) {
	rec := dbmodels.Proposal{}
	err := i.db.
		Model(&dbmodels.Proposal{}).
		Where("candidate_id = ?", candidateID).
		Where("offer_id = ?", offerID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

var immutableKeys = []string{"candidate_id", "CandidateID", "offer_id", "OfferID", "company_id", "CompanyID", "id", "ID"}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	for _, key := range immutableKeys {
		if _, ok := updMap[key]; ok {
			return models.NewUnauthorized("нельзя изменить кандидата или вакансию предложения")
		}
	}
	tx := i.db.
		Model(&dbmodels.Proposal{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		if db.IsImmutablePairErr(tx.Error) {
			return models.NewUnauthorized("нельзя изменить кандидата или вакансию предложения")
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFound("предложение не найдено")
	}
	return nil
}

func (i impl) SetAdminStatus(id string, from, to models.AdminStatus, reason, actorID string) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"AdminStatus":     to,
		"AdminReason":     reason,
		"AdminReviewedAt": &now,
		"AdminReviewedBy": actorID,
	}
	tx := i.db.
		Model(&dbmodels.Proposal{}).
		Where("id = ?", id).
		Where("admin_status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("предложение уже рассмотрено модератором")
	}
	return nil
}

func (i impl) SetCompanyStatus(id string, to models.CompanyStatus, reason, actorID string) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"CompanyStatus":     to,
		"CompanyReason":     reason,
		"CompanyReviewedAt": &now,
		"CompanyReviewedBy": actorID,
	}
	tx := i.db.
		Model(&dbmodels.Proposal{}).
		Where("id = ?", id).
		Where("admin_status = ?", models.AdminStatusApproved).
		Where("company_status = ?", models.CompanyStatusPending).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("предложение уже рассмотрено компанией")
	}
	return nil
}

func (i impl) ListCount(scope Scope, filter proposalapimodels.ProposalFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Proposal{})
	i.addScope(tx, scope)
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества предложений")
		return 0, errors.New("ошибка получения общего количества предложений")
	}
	return rowCount, nil
}

func (i impl) List(scope Scope, filter proposalapimodels.ProposalFilter) (list []dbmodels.Proposal, err error) {
	list = []dbmodels.Proposal{}
	tx := i.db.
		Model(dbmodels.Proposal{}).
		Select("proposals.*")
	i.addScope(tx, scope)
	i.addFilter(tx, filter)
	tx.Order("proposals.created_at desc")
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	err = tx.Preload(clause.Associations).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// addScope отклоненный кандидат не попадает ни в один список
func (i impl) addScope(tx *gorm.DB, scope Scope) {
	tx.Joins("join candidates as c on c.id = proposals.candidate_id").
		Where("c.approval_status <> ?", models.CandidateStatusRejected)
	if scope.CompanyID != "" {
		tx.Where("proposals.company_id = ?", scope.CompanyID).
			Where("proposals.admin_status = ?", models.AdminStatusApproved)
	}
	if scope.CandidateID != "" {
		tx.Where("proposals.candidate_id = ?", scope.CandidateID)
	}
}

func (i impl) addFilter(tx *gorm.DB, filter proposalapimodels.ProposalFilter) {
	if filter.OfferID != "" {
		tx.Where("proposals.offer_id = ?", filter.OfferID)
	}
	if filter.CandidateID != "" {
		tx.Where("proposals.candidate_id = ?", filter.CandidateID)
	}
	if filter.AdminStatus != "" {
		tx.Where("proposals.admin_status = ?", filter.AdminStatus)
	}
	if filter.CompanyStatus != "" {
		tx.Where("proposals.company_status = ?", filter.CompanyStatus)
	}
}
