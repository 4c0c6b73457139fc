package dbmodels

import (
	"staffing-backend/models"
	"time"
)

type Mission struct {
	BaseModel
	ProposalID  string               `gorm:"type:varchar(36);uniqueIndex"`
	Proposal    *Proposal            `gorm:"foreignKey:ProposalID"`
	CandidateID string               `gorm:"type:varchar(36);index"`
	Candidate   *Candidate           `gorm:"foreignKey:CandidateID"`
	OfferID     string               `gorm:"type:varchar(36);index"`
	Offer       *Offer               `gorm:"foreignKey:OfferID"`
	CompanyID   string               `gorm:"type:varchar(64);index"`
	Status      models.MissionStatus `gorm:"type:varchar(20);index"`
	StartDate   time.Time
	EndDate     *time.Time
	EndedBy     string `gorm:"type:varchar(64)"`
	Rating      *int   `gorm:"check:chk_missions_rating,rating IS NULL OR (rating >= 1 AND rating <= 5)"`
	Note        string
	RatedAt     *time.Time
}

func (m Mission) IsOwnedBy(companyID string) bool {
	return companyID != "" && m.CompanyID == companyID
}
