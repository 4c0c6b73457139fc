package missionstore

import (
	"staffing-backend/models"
	missionapimodels "staffing-backend/models/api/mission"
	dbmodels "staffing-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Mission) (id string, err error)
	GetByID(id string) (rec *dbmodels.Mission, err error)
	End(id, actorID string) error
	Rate(id string, rating int, note string) error
	ListCount(companyID string, filter missionapimodels.MissionFilter) (count int64, err error)
	List(companyID string, filter missionapimodels.MissionFilter) (list []dbmodels.Mission, err error)
	ListAll(companyID string) (list []dbmodels.Mission, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Mission) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания миссии")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Mission, error) {
	rec := dbmodels.Mission{}
	err := i.db.
		Model(&dbmodels.Mission{}).
		Where("id = ?", id).
		Preload("Candidate").
		Preload("Offer").
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

func (i impl) End(id, actorID string) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"Status":  models.MissionStatusCompleted,
		"EndDate": &now,
		"EndedBy": actorID,
	}
	tx := i.db.
		Model(&dbmodels.Mission{}).
		Where("id = ?", id).
		Where("status = ?", models.MissionStatusOngoing).
		Updates(updMap)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "ошибка завершения миссии")
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("миссия уже завершена")
	}
	return nil
}

// Rate повторная оценка перезаписывает предыдущую
func (i impl) Rate(id string, rating int, note string) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"Rating":  rating,
		"Note":    note,
		"RatedAt": &now,
	}
	tx := i.db.
		Model(&dbmodels.Mission{}).
		Where("id = ?", id).
		Where("status = ?", models.MissionStatusCompleted).
		Updates(updMap)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "ошибка сохранения оценки")
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("оценить можно только завершенную миссию")
	}
	return nil
}

func (i impl) ListCount(companyID string, filter missionapimodels.MissionFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Mission{})
	i.addFilter(tx, companyID, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества миссий")
		return 0, errors.New("ошибка получения общего количества миссий")
	}
	return rowCount, nil
}

func (i impl) List(companyID string, filter missionapimodels.MissionFilter) (list []dbmodels.Mission, err error) {
	list = []dbmodels.Mission{}
	tx := i.db.
		Model(dbmodels.Mission{})
	i.addFilter(tx, companyID, filter)
	tx.Order("start_date desc")
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	err = tx.Preload("Candidate").Preload("Offer").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll без пагинации, для выгрузки
func (i impl) ListAll(companyID string) (list []dbmodels.Mission, err error) {
	list = []dbmodels.Mission{}
	tx := i.db.
		Model(dbmodels.Mission{})
	if companyID != "" {
		tx.Where("company_id = ?", companyID)
	}
	err = tx.Order("start_date desc").
		Preload("Candidate").
		Preload("Offer").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, companyID string, filter missionapimodels.MissionFilter) {
	if companyID != "" {
		tx.Where("company_id = ?", companyID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.CandidateID != "" {
		tx.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.OfferID != "" {
		tx.Where("offer_id = ?", filter.OfferID)
	}
}
