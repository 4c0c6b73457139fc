package dbtest

import (
	"staffing-backend/models"
	dbmodels "staffing-backend/models/db"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func AddCandidate(t *testing.T, gdb *gorm.DB, status models.CandidateStatus) dbmodels.Candidate {
	t.Helper()
	userID := uuid.NewString()
	rec := dbmodels.Candidate{
		UserID:         userID,
		FirstName:      "Иван",
		LastName:       "Петров",
		Email:          userID + "@example.com",
		City:           "Москва",
		Skills:         datatypes.JSONSlice[string]{"go", "sql"},
		ApprovalStatus: status,
	}
	require.Nil(t, gdb.Create(&rec).Error)
	return rec
}

func AddOffer(t *testing.T, gdb *gorm.DB, companyID string) dbmodels.Offer {
	t.Helper()
	rec := dbmodels.Offer{
		CompanyID:    companyID,
		AuthorID:     "author-" + companyID,
		Title:        "Оператор склада",
		Location:     "Москва",
		ContractType: models.ContractTypeCDD,
		SalaryFrom:   50000,
		SalaryTo:     70000,
		ContactEmail: companyID + "@example.com",
		Status:       models.OfferStatusActive,
	}
	require.Nil(t, gdb.Omit("PlacedCandidate").Create(&rec).Error)
	return rec
}

func AddProposal(t *testing.T, gdb *gorm.DB, candidate dbmodels.Candidate, offer dbmodels.Offer, admin models.AdminStatus) dbmodels.Proposal {
	t.Helper()
	rec := dbmodels.Proposal{
		CandidateID:   candidate.ID,
		OfferID:       offer.ID,
		CompanyID:     offer.CompanyID,
		Origin:        models.OriginCandidateApplication,
		CreatedBy:     candidate.UserID,
		AdminStatus:   admin,
		CompanyStatus: models.CompanyStatusPending,
	}
	require.Nil(t, gdb.Omit("Candidate", "Offer").Create(&rec).Error)
	return rec
}

func ReloadOffer(t *testing.T, gdb *gorm.DB, id string) dbmodels.Offer {
	t.Helper()
	rec := dbmodels.Offer{}
	require.Nil(t, gdb.Where("id = ?", id).First(&rec).Error)
	return rec
}

func ReloadProposal(t *testing.T, gdb *gorm.DB, id string) dbmodels.Proposal {
	t.Helper()
	rec := dbmodels.Proposal{}
	require.Nil(t, gdb.Where("id = ?", id).First(&rec).Error)
	return rec
}

func ReloadMission(t *testing.T, gdb *gorm.DB, id string) dbmodels.Mission {
	t.Helper()
	rec := dbmodels.Mission{}
	require.Nil(t, gdb.Where("id = ?", id).First(&rec).Error)
	return rec
}

func CountProposals(t *testing.T, gdb *gorm.DB, offerID string) int64 {
	t.Helper()
	var count int64
	require.Nil(t, gdb.Model(&dbmodels.Proposal{}).Where("offer_id = ?", offerID).Count(&count).Error)
	return count
}

// NewCompanyID компания для тестов на общей базе
func NewCompanyID() string {
	return "company-" + uuid.NewString()[:8]
}
