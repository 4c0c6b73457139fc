package offerstore

import (
	"staffing-backend/models"
	offerapimodels "staffing-backend/models/api/offer"
	dbmodels "staffing-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Offer) (id string, err error)
	GetByID(id string) (rec *dbmodels.Offer, err error)
	UpdateOpen(id string, updMap map[string]interface{}) error
	ChangeStatus(id string, from, to models.OfferStatus) error
	Place(id, candidateID string) error
	Close(id string) error
	ListCount(companyID string, filter offerapimodels.OfferFilter) (count int64, err error)
	List(companyID string, filter offerapimodels.OfferFilter) (list []dbmodels.Offer, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Offer) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Offer, error) {
	rec := dbmodels.Offer{}
	err := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Preload("PlacedCandidate").
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

// UpdateOpen изменение полей вакансии, пока она не закрыта кандидатом
func (i impl) UpdateOpen(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status in (?)", models.OpenOfferStatuses).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("вакансия закрыта, изменение недоступно")
	}
	return nil
}

func (i impl) ChangeStatus(id string, from, to models.OfferStatus) error {
	tx := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Where("placed_candidate_id IS NULL").
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("статус вакансии изменился, повторите операцию")
	}
	return nil
}

// Place занимает вакансию кандидатом. Успешен ровно один вызов на вакансию,
// остальные получают ErrOfferAlreadyFilled.
func (i impl) Place(id, candidateID string) error {
	updMap := map[string]interface{}{
		"Status":            models.OfferStatusFilled,
		"PlacedCandidateID": candidateID,
	}
	tx := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("placed_candidate_id IS NULL").
		Where("status in (?)", models.OpenOfferStatuses).
		Updates(updMap)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "ошибка закрытия вакансии кандидатом")
	}
	if tx.RowsAffected == 0 {
		return models.ErrOfferAlreadyFilled
	}
	return nil
}

// Close перевод занятой вакансии в архив после завершения миссии, кандидат сохраняется
func (i impl) Close(id string) error {
	tx := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status = ?", models.OfferStatusFilled).
		Update("status", models.OfferStatusClosed)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "ошибка перевода вакансии в архив")
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("вакансия не занята кандидатом")
	}
	return nil
}

func (i impl) ListCount(companyID string, filter offerapimodels.OfferFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Offer{})
	i.addFilter(tx, companyID, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества вакансий")
		return 0, errors.New("ошибка получения общего количества вакансий")
	}
	return rowCount, nil
}

// List вакансии компании, либо все активные при пустом companyID
func (i impl) List(companyID string, filter offerapimodels.OfferFilter) (list []dbmodels.Offer, err error) {
	list = []dbmodels.Offer{}
	tx := i.db.
		Model(dbmodels.Offer{})
	i.addFilter(tx, companyID, filter)
	tx.Order("created_at desc")
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	err = tx.Preload("PlacedCandidate").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, companyID string, filter offerapimodels.OfferFilter) {
	if companyID != "" {
		tx.Where("company_id = ?", companyID)
		if len(filter.Statuses) != 0 {
			tx.Where("status in (?)", filter.Statuses)
		}
	} else {
		tx.Where("status = ?", models.OfferStatusActive)
	}
	if filter.ContractType != "" {
		tx.Where("contract_type = ?", filter.ContractType)
	}
	if filter.Location != "" {
		tx.Where("LOWER(location) like ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Search != "" {
		tx.Where("LOWER(title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}
