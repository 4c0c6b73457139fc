package dbmodels

import (
	"staffing-backend/models"
	"time"
)

type Offer struct {
	BaseModel
	CompanyID         string `gorm:"type:varchar(64);index"`
	AuthorID          string `gorm:"type:varchar(64)"`
	Title             string `gorm:"type:varchar(255)"`
	Description       string
	Location          string              `gorm:"type:varchar(255)"`
	ContractType      models.ContractType `gorm:"type:varchar(50)"`
	SalaryFrom        int                 `gorm:"check:chk_offers_salary,salary_from = 0 OR salary_to = 0 OR salary_from <= salary_to"`
	SalaryTo          int
	StartDate         *time.Time
	ContactEmail      string             `gorm:"type:varchar(255)"`
	Status            models.OfferStatus `gorm:"type:varchar(20);index;check:chk_offers_placement,(placed_candidate_id IS NULL) = (status IN ('active','paused'))"`
	PlacedCandidateID *string            `gorm:"type:varchar(36)"`
	PlacedCandidate   *Candidate         `gorm:"foreignKey:PlacedCandidateID"`
}

func (o Offer) IsOwnedBy(companyID string) bool {
	return companyID != "" && o.CompanyID == companyID
}
