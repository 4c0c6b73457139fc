package missionhandler

import (
	"bytes"
	"staffing-backend/db"
	xlsexport "staffing-backend/lib/export/xls"
	missionstore "staffing-backend/lib/mission/store"
	"staffing-backend/lib/notify"
	initchecker "staffing-backend/lib/utils/init-checker"
	"staffing-backend/models"
	missionapimodels "staffing-backend/models/api/mission"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Rate(companyID, id string, data missionapimodels.RateData) error
	Get(actor models.Actor, id string) (item missionapimodels.MissionView, err error)
	List(companyID string, filter missionapimodels.MissionFilter) (list []missionapimodels.MissionView, rowCount int64, err error)
	Export(companyID string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notify", notify.Instance,
		"xlsexport", xlsexport.Instance,
	)
	Instance = NewInstance(db.DB, notify.Instance, xlsexport.Instance)
}

func NewInstance(gdb *gorm.DB, notifier notify.Provider, exporter xlsexport.Provider) Provider {
	return impl{
		store:    missionstore.NewInstance(gdb),
		notifier: notifier,
		exporter: exporter,
	}
}

type impl struct {
	store    missionstore.Provider
	notifier notify.Provider
	exporter xlsexport.Provider
}

func (i impl) Rate(companyID, id string, data missionapimodels.RateData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения миссии")
	}
	if rec == nil {
		return models.NewNotFound("миссия не найдена")
	}
	if !rec.IsOwnedBy(companyID) {
		return models.NewUnauthorized("миссия принадлежит другой компании")
	}
	if err = rec.Status.CanRate(); err != nil {
		return err
	}
	err = i.store.Rate(id, data.Rating, data.Note)
	if err != nil {
		return err
	}
	log.
		WithField("mission_id", id).
		WithField("company_id", companyID).
		WithField("rating", data.Rating).
		Info("Миссия оценена")
	if i.notifier != nil {
		rating := data.Rating
		rec.Rating = &rating
		i.notifier.MissionRated(*rec)
	}
	return nil
}

func (i impl) Get(actor models.Actor, id string) (item missionapimodels.MissionView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return missionapimodels.MissionView{}, errors.Wrap(err, "ошибка получения миссии")
	}
	if rec == nil {
		return missionapimodels.MissionView{}, models.NewNotFound("миссия не найдена")
	}
	if !actor.IsAdmin() && !rec.IsOwnedBy(actor.CompanyID) {
		return missionapimodels.MissionView{}, models.NewUnauthorized("миссия принадлежит другой компании")
	}
	return missionapimodels.MissionConvert(*rec), nil
}

// List миссии компании, для администратора companyID пустой
func (i impl) List(companyID string, filter missionapimodels.MissionFilter) (list []missionapimodels.MissionView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(companyID, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка миссий")
	}
	list = make([]missionapimodels.MissionView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, missionapimodels.MissionConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Export(companyID string) (*bytes.Buffer, error) {
	recList, err := i.store.ListAll(companyID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка миссий")
	}
	return i.exporter.ExportMissionList(recList)
}
