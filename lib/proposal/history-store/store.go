package historystore

import (
	"staffing-backend/models"
	dbmodels "staffing-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Save(proposalID string, track models.ReviewTrack, status, reason, actorID string) error
	List(proposalID string) (list []dbmodels.ProposalHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(proposalID string, track models.ReviewTrack, status, reason, actorID string) error {
	rec := dbmodels.ProposalHistory{
		ProposalID: proposalID,
		Track:      track,
		Status:     status,
		Reason:     reason,
		ActorID:    actorID,
	}
	err := i.db.Create(&rec).Error
	if err != nil {
		return errors.Wrap(err, "ошибка записи истории предложения")
	}
	return nil
}

func (i impl) List(proposalID string) (list []dbmodels.ProposalHistory, err error) {
	list = []dbmodels.ProposalHistory{}
	err = i.db.
		Model(&dbmodels.ProposalHistory{}).
		Where("proposal_id = ?", proposalID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
