package missionapimodels

import (
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"
	dbmodels "staffing-backend/models/db"
	"time"
	"unicode/utf8"
)

const MaxNoteLength = 2000

type RateData struct {
	Rating int    `json:"rating"`
	Note   string `json:"note"`
}

// Validate проверка диапазона оценки идет раньше проверки статуса миссии
func (r RateData) Validate() error {
	if err := models.ValidateRating(r.Rating); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Note) > MaxNoteLength {
		return models.NewValidation("комментарий слишком длинный")
	}
	return nil
}

type MissionView struct {
	ID            string               `json:"id"`
	ProposalID    string               `json:"proposal_id"`
	CandidateID   string               `json:"candidate_id"`
	CandidateName string               `json:"candidate_name"`
	OfferID       string               `json:"offer_id"`
	OfferTitle    string               `json:"offer_title"`
	CompanyID     string               `json:"company_id"`
	Status        models.MissionStatus `json:"status"`
	StatusName    string               `json:"status_name"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       *time.Time           `json:"end_date"`
	Rating        *int                 `json:"rating"`
	Note          string               `json:"note,omitempty"`
	RatedAt       *time.Time           `json:"rated_at,omitempty"`
}

func MissionConvert(rec dbmodels.Mission) MissionView {
	result := MissionView{
		ID:          rec.ID,
		ProposalID:  rec.ProposalID,
		CandidateID: rec.CandidateID,
		OfferID:     rec.OfferID,
		CompanyID:   rec.CompanyID,
		Status:      rec.Status,
		StatusName:  rec.Status.ToHuman(),
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		Rating:      rec.Rating,
		Note:        rec.Note,
		RatedAt:     rec.RatedAt,
	}
	if rec.Candidate != nil {
		result.CandidateName = rec.Candidate.GetFullName()
	}
	if rec.Offer != nil {
		result.OfferTitle = rec.Offer.Title
	}
	return result
}

type MissionFilter struct {
	apimodels.Pagination
	Status      models.MissionStatus `json:"status"`
	CandidateID string               `json:"candidate_id"`
	OfferID     string               `json:"offer_id"`
}
