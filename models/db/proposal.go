package dbmodels

import (
	"staffing-backend/models"
	"time"

	"gorm.io/gorm"
)

type Proposal struct {
	BaseModel
	CandidateID       string                `gorm:"type:varchar(36);not null;uniqueIndex:idx_proposal_pair"`
	Candidate         *Candidate            `gorm:"foreignKey:CandidateID"`
	OfferID           string                `gorm:"type:varchar(36);not null;uniqueIndex:idx_proposal_pair;index"`
	Offer             *Offer                `gorm:"foreignKey:OfferID"`
	CompanyID         string                `gorm:"type:varchar(64);index"` // владелец вакансии, копия для выборок компании
	Origin            models.ProposalOrigin `gorm:"type:varchar(30)"`
	CreatedBy         string                `gorm:"type:varchar(64)"`
	AdminStatus       models.AdminStatus    `gorm:"type:varchar(20);index"`
	AdminReason       string
	AdminReviewedAt   *time.Time
	AdminReviewedBy   string               `gorm:"type:varchar(64)"`
	CompanyStatus     models.CompanyStatus `gorm:"type:varchar(20);index"`
	CompanyReason     string
	CompanyReviewedAt *time.Time
	CompanyReviewedBy string `gorm:"type:varchar(64)"`
}

// BeforeUpdate пара кандидат/вакансия неизменна после создания. Схема дублирует проверку триггером
func (p *Proposal) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CandidateID", "OfferID", "CompanyID") {
		return models.NewUnauthorized("нельзя изменить кандидата или вакансию предложения")
	}
	return nil
}

// IsInert предложение отклонено модератором, дальнейшие переходы невозможны
func (p Proposal) IsInert() bool {
	return p.AdminStatus == models.AdminStatusRejected
}

// VisibleToCompany компания видит только одобренные модератором предложения
func (p Proposal) VisibleToCompany(companyID string) bool {
	return p.CompanyID == companyID && p.AdminStatus == models.AdminStatusApproved
}

type ProposalHistory struct {
	BaseModel
	ProposalID string             `gorm:"type:varchar(36);index"`
	Proposal   *Proposal          `gorm:"foreignKey:ProposalID"`
	Track      models.ReviewTrack `gorm:"type:varchar(20)"`
	Status     string             `gorm:"type:varchar(20)"`
	Reason     string
	ActorID    string `gorm:"type:varchar(64)"`
}
