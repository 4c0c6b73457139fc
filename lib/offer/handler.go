package offerhandler

import (
	"staffing-backend/db"
	offerstore "staffing-backend/lib/offer/store"
	"staffing-backend/models"
	offerapimodels "staffing-backend/models/api/offer"
	dbmodels "staffing-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(companyID, userID string, data offerapimodels.OfferData) (id string, err error)
	Update(companyID, id string, data offerapimodels.OfferData) error
	SetStatus(companyID, id string, status models.OfferStatus) error
	GetByID(companyID, id string) (item offerapimodels.OfferView, err error)
	ListByCompany(companyID string, filter offerapimodels.OfferFilter) (list []offerapimodels.OfferView, rowCount int64, err error)
	ListActive(filter offerapimodels.OfferFilter) (list []offerapimodels.OfferView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(gdb *gorm.DB) Provider {
	return impl{
		store: offerstore.NewInstance(gdb),
	}
}

type impl struct {
	store offerstore.Provider
}

func (i impl) getLogger(companyID, id string) *log.Entry {
	logger := log.WithField("company_id", companyID)
	if id != "" {
		logger = logger.WithField("offer_id", id)
	}
	return logger
}

func (i impl) Create(companyID, userID string, data offerapimodels.OfferData) (id string, err error) {
	if companyID == "" {
		return "", models.NewUnauthorized("пользователь не привязан к компании")
	}
	if err = data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Offer{
		CompanyID:    companyID,
		AuthorID:     userID,
		Title:        strings.TrimSpace(data.Title),
		Description:  data.Description,
		Location:     data.Location,
		ContractType: data.ContractType,
		SalaryFrom:   data.SalaryFrom,
		SalaryTo:     data.SalaryTo,
		StartDate:    data.StartDate,
		ContactEmail: data.ContactEmail,
		Status:       models.OfferStatusActive,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания вакансии")
	}
	i.getLogger(companyID, id).Info("Создана вакансия")
	return id, nil
}

func (i impl) getOwned(companyID, id string) (*dbmodels.Offer, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return nil, models.NewNotFound("вакансия не найдена")
	}
	if !rec.IsOwnedBy(companyID) {
		return nil, models.NewUnauthorized("вакансия принадлежит другой компании")
	}
	return rec, nil
}

func (i impl) Update(companyID, id string, data offerapimodels.OfferData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.getOwned(companyID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsOpen() {
		return models.NewInvalidTransition("вакансия закрыта, изменение недоступно")
	}
	updMap := map[string]interface{}{
		"Title":        strings.TrimSpace(data.Title),
		"Description":  data.Description,
		"Location":     data.Location,
		"ContractType": data.ContractType,
		"SalaryFrom":   data.SalaryFrom,
		"SalaryTo":     data.SalaryTo,
		"StartDate":    data.StartDate,
		"ContactEmail": data.ContactEmail,
	}
	err = i.store.UpdateOpen(id, updMap)
	if err != nil {
		return err
	}
	i.getLogger(companyID, id).Info("Обновлена вакансия")
	return nil
}

func (i impl) SetStatus(companyID, id string, status models.OfferStatus) error {
	rec, err := i.getOwned(companyID, id)
	if err != nil {
		return err
	}
	if err = rec.Status.CompanyTransition(status); err != nil {
		return err
	}
	if rec.Status == status {
		return nil
	}
	err = i.store.ChangeStatus(id, rec.Status, status)
	if err != nil {
		return err
	}
	i.getLogger(companyID, id).
		WithField("status", status).
		Info("Изменен статус вакансии")
	return nil
}

func (i impl) GetByID(companyID, id string) (item offerapimodels.OfferView, err error) {
	rec, err := i.getOwned(companyID, id)
	if err != nil {
		return offerapimodels.OfferView{}, err
	}
	return offerapimodels.OfferConvert(*rec), nil
}

func (i impl) ListByCompany(companyID string, filter offerapimodels.OfferFilter) (list []offerapimodels.OfferView, rowCount int64, err error) {
	if companyID == "" {
		return nil, 0, models.NewUnauthorized("пользователь не привязан к компании")
	}
	return i.list(companyID, filter)
}

// ListActive вакансии для кандидатов, только в статусе active
func (i impl) ListActive(filter offerapimodels.OfferFilter) (list []offerapimodels.OfferView, rowCount int64, err error) {
	filter.Statuses = nil
	return i.list("", filter)
}

func (i impl) list(companyID string, filter offerapimodels.OfferFilter) (list []offerapimodels.OfferView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(companyID, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка вакансий")
	}
	list = make([]offerapimodels.OfferView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, offerapimodels.OfferConvert(rec))
	}
	return list, rowCount, nil
}
