package candidateapimodels

import (
	"fmt"
	"net/mail"
	"staffing-backend/models"
	apimodels "staffing-backend/models/api"
	dbmodels "staffing-backend/models/db"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type RegisterData struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	City            string   `json:"city"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
}

func (r RegisterData) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return models.NewValidation("не указано имя")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return models.NewValidation("не указана фамилия")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.ExperienceYears < 0 {
		return models.NewValidation("некорректный опыт работы")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return models.NewValidation("не указана почта")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.NewValidation("некорректная почта")
	}
	return nil
}

// ProfileUpdate частичное изменение анкеты, ключи - имена полей в json
type ProfileUpdate map[string]interface{}

// поля модерации меняет только администратор
var moderatedFields = map[string]bool{
	"id":              true,
	"user_id":         true,
	"approval_status": true,
	"reject_reason":   true,
	"reviewed_at":     true,
	"reviewed_by":     true,
	"resume_key":      true,
}

var stringFields = map[string]string{
	"first_name": "FirstName",
	"last_name":  "LastName",
	"email":      "Email",
	"phone":      "Phone",
	"city":       "City",
}

// ToUpdMap проверяет ключи и приводит значения к полям модели
func (p ProfileUpdate) ToUpdMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	for key, value := range p {
		if moderatedFields[key] {
			return nil, models.NewUnauthorized(fmt.Sprintf("поле %v недоступно для изменения", key))
		}
		if field, ok := stringFields[key]; ok {
			strValue, ok := value.(string)
			if !ok {
				return nil, models.NewValidation(fmt.Sprintf("поле %v должно быть строкой", key))
			}
			strValue = strings.TrimSpace(strValue)
			if strValue == "" && (key == "first_name" || key == "last_name") {
				return nil, models.NewValidation(fmt.Sprintf("поле %v не может быть пустым", key))
			}
			if key == "email" {
				if err := validateEmail(strValue); err != nil {
					return nil, err
				}
			}
			updMap[field] = strValue
			continue
		}
		switch key {
		case "skills":
			skills, err := toStringSlice(value)
			if err != nil {
				return nil, err
			}
			updMap["Skills"] = datatypes.JSONSlice[string](skills)
		case "experience_years":
			years, ok := toInt(value)
			if !ok || years < 0 {
				return nil, models.NewValidation("некорректный опыт работы")
			}
			updMap["ExperienceYears"] = years
		default:
			return nil, models.NewValidation(fmt.Sprintf("неизвестное поле %v", key))
		}
	}
	return updMap, nil
}

func toStringSlice(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, models.NewValidation("навыки должны быть списком строк")
			}
			result = append(result, s)
		}
		return result, nil
	case nil:
		return []string{}, nil
	}
	return nil, models.NewValidation("навыки должны быть списком строк")
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

type CandidateView struct {
	ID                 string                 `json:"id"`
	FirstName          string                 `json:"first_name"`
	LastName           string                 `json:"last_name"`
	FullName           string                 `json:"full_name"`
	Email              string                 `json:"email"`
	Phone              string                 `json:"phone"`
	City               string                 `json:"city"`
	Skills             []string               `json:"skills"`
	ExperienceYears    int                    `json:"experience_years"`
	HasResume          bool                   `json:"has_resume"`
	ApprovalStatus     models.CandidateStatus `json:"approval_status"`
	ApprovalStatusName string                 `json:"approval_status_name"`
	RejectReason       string                 `json:"reject_reason,omitempty"`
	ReviewedAt         *time.Time             `json:"reviewed_at,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	skills := []string(rec.Skills)
	if skills == nil {
		skills = []string{}
	}
	return CandidateView{
		ID:                 rec.ID,
		FirstName:          rec.FirstName,
		LastName:           rec.LastName,
		FullName:           rec.GetFullName(),
		Email:              rec.Email,
		Phone:              rec.Phone,
		City:               rec.City,
		Skills:             skills,
		ExperienceYears:    rec.ExperienceYears,
		HasResume:          rec.ResumeKey != "",
		ApprovalStatus:     rec.ApprovalStatus,
		ApprovalStatusName: rec.ApprovalStatus.ToHuman(),
		RejectReason:       rec.RejectReason,
		ReviewedAt:         rec.ReviewedAt,
		CreatedAt:          rec.CreatedAt,
	}
}

type CandidateFilter struct {
	apimodels.Pagination
	Search string                 `json:"search"` // поиск по ФИО, почте и навыкам
	Status models.CandidateStatus `json:"status"`
	City   string                 `json:"city"`
}

type ReviewData struct {
	Decision models.ModerationDecision `json:"decision"`
	Reason   string                    `json:"reason"`
}

func (r ReviewData) Validate() error {
	return r.Decision.Validate()
}

type ResumeLink struct {
	Url       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
