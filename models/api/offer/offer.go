package offerapimodels

import (
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"
	dbmodels "staffing-backend/models/db"
	"strings"
	"time"
)

type OfferData struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Location     string              `json:"location"`
	ContractType models.ContractType `json:"contract_type"`
	SalaryFrom   int                 `json:"salary_from"`
	SalaryTo     int                 `json:"salary_to"`
	StartDate    *time.Time          `json:"start_date"`
	ContactEmail string              `json:"contact_email"`
}

func (o OfferData) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return models.NewValidation("не указано название вакансии")
	}
	if !o.ContractType.IsValid() {
		return models.NewValidation("неизвестный тип договора")
	}
	if o.SalaryFrom < 0 || o.SalaryTo < 0 {
		return models.NewValidation("зарплата не может быть отрицательной")
	}
	if o.SalaryFrom != 0 && o.SalaryTo != 0 && o.SalaryFrom > o.SalaryTo {
		return models.NewValidation("зарплата \"от\" больше зарплаты \"до\"")
	}
	return nil
}

type StatusData struct {
	Status models.OfferStatus `json:"status"`
}

type OfferView struct {
	OfferData
	ID                  string             `json:"id"`
	CompanyID           string             `json:"company_id"`
	Status              models.OfferStatus `json:"status"`
	StatusName          string             `json:"status_name"`
	ContractTypeName    string             `json:"contract_type_name"`
	PlacedCandidateID   string             `json:"placed_candidate_id,omitempty"`
	PlacedCandidateName string             `json:"placed_candidate_name,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

var contractTypeHumanName = map[models.ContractType]string{
	models.ContractTypeCDI:        "Бессрочный договор",
	models.ContractTypeCDD:        "Срочный договор",
	models.ContractTypeInterim:    "Временная работа",
	models.ContractTypeFreelance:  "Фриланс",
	models.ContractTypeInternship: "Стажировка",
}

func OfferConvert(rec dbmodels.Offer) OfferView {
	result := OfferView{
		OfferData: OfferData{
			Title:        rec.Title,
			Description:  rec.Description,
			Location:     rec.Location,
			ContractType: rec.ContractType,
			SalaryFrom:   rec.SalaryFrom,
			SalaryTo:     rec.SalaryTo,
			StartDate:    rec.StartDate,
			ContactEmail: rec.ContactEmail,
		},
		ID:               rec.ID,
		CompanyID:        rec.CompanyID,
		Status:           rec.Status,
		StatusName:       rec.Status.ToHuman(),
		ContractTypeName: contractTypeHumanName[rec.ContractType],
		CreatedAt:        rec.CreatedAt,
	}
	if rec.PlacedCandidateID != nil {
		result.PlacedCandidateID = *rec.PlacedCandidateID
	}
	if rec.PlacedCandidate != nil {
		result.PlacedCandidateName = rec.PlacedCandidate.GetFullName()
	}
	return result
}

type OfferFilter struct {
	apimodels.Pagination
	Search       string               `json:"search"`
	Location     string               `json:"location"`
	ContractType models.ContractType  `json:"contract_type"`
	Statuses     []models.OfferStatus `json:"statuses"` // только для списка компании
}
