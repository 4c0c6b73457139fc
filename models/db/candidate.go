package dbmodels

import (
	"fmt"
	"staffing-backend/models"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Candidate struct {
	BaseModel
	UserID          string `gorm:"type:varchar(64);uniqueIndex"` // subject провайдера авторизации
	FirstName       string `gorm:"type:varchar(255)"`
	LastName        string `gorm:"type:varchar(255)"`
	Email           string `gorm:"type:varchar(255)"`
	Phone           string `gorm:"type:varchar(50)"`
	City            string `gorm:"type:varchar(255)"`
	Skills          datatypes.JSONSlice[string]
	ExperienceYears int
	ResumeKey       string                 `gorm:"type:varchar(255)"` // ключ объекта в хранилище документов
	ApprovalStatus  models.CandidateStatus `gorm:"type:varchar(20);index"`
	RejectReason    string
	ReviewedAt      *time.Time
	ReviewedBy      string `gorm:"type:varchar(64)"`
}

func (c Candidate) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", c.LastName, c.FirstName))
}

// IsSelectable кандидата можно предлагать на новые вакансии
func (c Candidate) IsSelectable() bool {
	return c.ApprovalStatus == models.CandidateStatusApproved
}
