package candidatestore

import (
	"staffing-backend/db"
	"staffing-backend/models"
	candidateapimodels "staffing-backend/models/api/candidate"
	dbmodels "staffing-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	GetByUserID(userID string) (rec *dbmodels.Candidate, err error)
	GetForUpdate(id string) (rec *dbmodels.Candidate, err error)
	Update(id string, updMap map[string]interface{}) error
	SetApprovalStatus(id string, from, to models.CandidateStatus, reason, reviewedBy string) error
	ListCount(filter candidateapimodels.CandidateFilter) (count int64, err error)
	List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		if db.IsDuplicateErr(err) {
			return "", models.NewValidation("анкета кандидата уже существует")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
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

func (i impl) GetByUserID(userID string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("user_id = ?", userID).
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

// GetForUpdate чтение с блокировкой строки до конца транзакции (в sqlite блокировка на всю базу)
func (i impl) GetForUpdate(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	tx := i.db.Model(&dbmodels.Candidate{})
	if i.db.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "SHARE"})
	}
	err := tx.
		Where("id = ?", id).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap)
	err := tx.Error
	if err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFound("кандидат не найден")
	}
	return nil
}

func (i impl) SetApprovalStatus(id string, from, to models.CandidateStatus, reason, reviewedBy string) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"ApprovalStatus": to,
		"RejectReason":   reason,
		"ReviewedAt":     &now,
		"ReviewedBy":     reviewedBy,
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Where("approval_status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewInvalidTransition("анкета кандидата уже рассмотрена")
	}
	return nil
}

func (i impl) ListCount(filter candidateapimodels.CandidateFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества кандидатов")
		return 0, errors.New("ошибка получения общего количества кандидатов")
	}
	return rowCount, nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.
		Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	tx.Order("created_at desc")
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter candidateapimodels.CandidateFilter) {
	if filter.Status != "" {
		tx.Where("approval_status = ?", filter.Status)
	}
	if filter.City != "" {
		tx.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(first_name) like ? OR LOWER(last_name) like ? OR LOWER(email) like ? OR LOWER(CAST(skills AS TEXT)) like ?",
			search, search, search, search)
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
