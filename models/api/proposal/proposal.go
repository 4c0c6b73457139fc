package proposalapimodels

import (
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"
	dbmodels "staffing-backend/models/db"
	"time"
)

type ProposeData struct {
	CandidateID string `json:"candidate_id"`
	OfferID     string `json:"offer_id"`
}

func (p ProposeData) Validate() error {
	if p.CandidateID == "" {
		return models.NewValidation("не указан кандидат")
	}
	if p.OfferID == "" {
		return models.NewValidation("не указана вакансия")
	}
	return nil
}

type PlacementData struct {
	ProposeData
	Note string `json:"note"`
}

type AdminReviewData struct {
	Decision models.ModerationDecision `json:"decision"`
	Reason   string                    `json:"reason"`
}

func (r AdminReviewData) Validate() error {
	return r.Decision.Validate()
}

type CompanyReviewData struct {
	Decision models.CompanyDecision `json:"decision"`
	Reason   string                 `json:"reason"`
}

func (r CompanyReviewData) Validate() error {
	return r.Decision.Validate()
}

type ProposalView struct {
	ID                string                `json:"id"`
	CandidateID       string                `json:"candidate_id"`
	CandidateName     string                `json:"candidate_name"`
	OfferID           string                `json:"offer_id"`
	OfferTitle        string                `json:"offer_title"`
	CompanyID         string                `json:"company_id"`
	Origin            models.ProposalOrigin `json:"origin"`
	AdminStatus       models.AdminStatus    `json:"admin_status"`
	AdminStatusName   string                `json:"admin_status_name"`
	AdminReason       string                `json:"admin_reason,omitempty"`
	AdminReviewedAt   *time.Time            `json:"admin_reviewed_at,omitempty"`
	CompanyStatus     models.CompanyStatus  `json:"company_status"`
	CompanyStatusName string                `json:"company_status_name"`
	CompanyReason     string                `json:"company_reason,omitempty"`
	CompanyReviewedAt *time.Time            `json:"company_reviewed_at,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

func ProposalConvert(rec dbmodels.Proposal) ProposalView {
	result := ProposalView{
		ID:                rec.ID,
		CandidateID:       rec.CandidateID,
		OfferID:           rec.OfferID,
		CompanyID:         rec.CompanyID,
		Origin:            rec.Origin,
		AdminStatus:       rec.AdminStatus,
		AdminStatusName:   rec.AdminStatus.ToHuman(),
		AdminReason:       rec.AdminReason,
		AdminReviewedAt:   rec.AdminReviewedAt,
		CompanyStatus:     rec.CompanyStatus,
		CompanyStatusName: rec.CompanyStatus.ToHuman(),
		CompanyReason:     rec.CompanyReason,
		CompanyReviewedAt: rec.CompanyReviewedAt,
		CreatedAt:         rec.CreatedAt,
	}
	if rec.Candidate != nil {
		result.CandidateName = rec.Candidate.GetFullName()
	}
	if rec.Offer != nil {
		result.OfferTitle = rec.Offer.Title
	}
	return result
}

type ProposalFilter struct {
	apimodels.Pagination
	OfferID       string               `json:"offer_id"`
	CandidateID   string               `json:"candidate_id"`
	AdminStatus   models.AdminStatus   `json:"admin_status"`
	CompanyStatus models.CompanyStatus `json:"company_status"`
}

type HistoryView struct {
	Track     models.ReviewTrack `json:"track"`
	Status    string             `json:"status"`
	Reason    string             `json:"reason,omitempty"`
	ActorID   string             `json:"actor_id"`
	CreatedAt time.Time          `json:"created_at"`
}

func HistoryConvert(rec dbmodels.ProposalHistory) HistoryView {
	return HistoryView{
		Track:     rec.Track,
		Status:    rec.Status,
		Reason:    rec.Reason,
		ActorID:   rec.ActorID,
		CreatedAt: rec.CreatedAt,
	}
}
