package candidatehandler

import (
	"context"
	"io"
	"staffing-backend/db"
	candidatestore "staffing-backend/lib/candidate/store"
	filestorage "staffing-backend/lib/file-storage"
	initchecker "staffing-backend/lib/utils/init-checker"
	"staffing-backend/models"
	candidateapimodels "staffing-backend/models/api/candidate"
	dbmodels "staffing-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Provider interface {
	Register(userID string, data candidateapimodels.RegisterData) (id string, err error)
	UpdateProfile(userID, id string, data candidateapimodels.ProfileUpdate) error
	Get(id string) (item candidateapimodels.CandidateView, err error)
	GetByUser(userID string) (item candidateapimodels.CandidateView, err error)
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	ListApproved(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	UploadResume(ctx context.Context, userID, fileName string, reader io.Reader, size int64, contentType string) error
	GetResumeLink(ctx context.Context, id string) (link candidateapimodels.ResumeLink, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"filestorage", filestorage.Instance,
	)
	Instance = NewInstance(db.DB, filestorage.Instance)
}

func NewInstance(gdb *gorm.DB, fileStorage filestorage.Provider) Provider {
	return impl{
		store:       candidatestore.NewInstance(gdb),
		fileStorage: fileStorage,
	}
}

type impl struct {
	store       candidatestore.Provider
	fileStorage filestorage.Provider
}

func (i impl) getLogger(id, userID string) *log.Entry {
	logger := log.WithField("candidate_id", id)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (i impl) Register(userID string, data candidateapimodels.RegisterData) (id string, err error) {
	if userID == "" {
		return "", models.NewUnauthorized("не определен пользователь")
	}
	if err = data.Validate(); err != nil {
		return "", err
	}
	existed, err := i.store.GetByUserID(userID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки анкеты кандидата")
	}
	if existed != nil {
		return "", models.NewValidation("анкета кандидата уже существует")
	}
	skills := data.Skills
	if skills == nil {
		skills = []string{}
	}
	rec := dbmodels.Candidate{
		UserID:          userID,
		FirstName:       strings.TrimSpace(data.FirstName),
		LastName:        strings.TrimSpace(data.LastName),
		Email:           strings.TrimSpace(data.Email),
		Phone:           data.Phone,
		City:            data.City,
		Skills:          datatypes.JSONSlice[string](skills),
		ExperienceYears: data.ExperienceYears,
		ApprovalStatus:  models.CandidateStatusPending,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	i.getLogger(id, userID).Info("Зарегистрирован кандидат")
	return id, nil
}

func (i impl) UpdateProfile(userID, id string, data candidateapimodels.ProfileUpdate) error {
	updMap, err := data.ToUpdMap()
	if err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return models.NewNotFound("кандидат не найден")
	}
	if rec.UserID != userID {
		return models.NewUnauthorized("анкета принадлежит другому пользователю")
	}
	if rec.ApprovalStatus == models.CandidateStatusRejected {
		return models.NewInvalidTransition("анкета отклонена модератором")
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	i.getLogger(id, userID).Info("Обновлена анкета кандидата")
	return nil
}

func (i impl) Get(id string) (item candidateapimodels.CandidateView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return candidateapimodels.CandidateView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, models.NewNotFound("кандидат не найден")
	}
	return candidateapimodels.CandidateConvert(*rec), nil
}

func (i impl) GetByUser(userID string) (item candidateapimodels.CandidateView, err error) {
	rec, err := i.store.GetByUserID(userID)
	if err != nil {
		return candidateapimodels.CandidateView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, models.NewNotFound("анкета кандидата не заполнена")
	}
	return candidateapimodels.CandidateConvert(*rec), nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка кандидатов")
	}
	list = make([]candidateapimodels.CandidateView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, candidateapimodels.CandidateConvert(rec))
	}
	return list, rowCount, nil
}

// ListApproved поиск кандидатов для компании, видны только одобренные
func (i impl) ListApproved(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	filter.Status = models.CandidateStatusApproved
	return i.List(filter)
}

func (i impl) UploadResume(ctx context.Context, userID, fileName string, reader io.Reader, size int64, contentType string) error {
	if i.fileStorage == nil {
		return filestorage.ErrNotConfigured
	}
	rec, err := i.store.GetByUserID(userID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return models.NewNotFound("анкета кандидата не заполнена")
	}
	if rec.ApprovalStatus == models.CandidateStatusRejected {
		return models.NewInvalidTransition("анкета отклонена модератором")
	}
	key, err := i.fileStorage.UploadResume(ctx, rec.ID, fileName, reader, size, contentType)
	if err != nil {
		return err
	}
	err = i.store.Update(rec.ID, map[string]interface{}{"ResumeKey": key})
	if err != nil {
		return err
	}
	i.getLogger(rec.ID, userID).Info("Загружено резюме кандидата")
	return nil
}

func (i impl) GetResumeLink(ctx context.Context, id string) (link candidateapimodels.ResumeLink, err error) {
	if i.fileStorage == nil {
		return candidateapimodels.ResumeLink{}, filestorage.ErrNotConfigured
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return candidateapimodels.ResumeLink{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return candidateapimodels.ResumeLink{}, models.NewNotFound("кандидат не найден")
	}
	if rec.ResumeKey == "" {
		return candidateapimodels.ResumeLink{}, models.NewNotFound("резюме не загружено")
	}
	url, expiresAt, err := i.fileStorage.GetResumeLink(ctx, rec.ResumeKey)
	if err != nil {
		return candidateapimodels.ResumeLink{}, err
	}
	return candidateapimodels.ResumeLink{Url: url, ExpiresAt: expiresAt}, nil
}
