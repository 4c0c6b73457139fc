package xlsexport

import (
	"staffing-backend/models"
	dbmodels "staffing-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportMissionList(t *testing.T) {
	t.Run(`empty list check`, func(t *testing.T) {
		buf, err := impl{}.ExportMissionList(nil)
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		rows, err := f.GetRows(missionSheet)
		require.Nil(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, missionHeaders, rows[0])
	})

	t.Run(`missions check`, func(t *testing.T) {
		rating := 4
		start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		end := time.Date(2026, 5, 29, 10, 0, 0, 0, time.UTC)
		list := []dbmodels.Mission{
			{
				CandidateID: "c1",
				Candidate:   &dbmodels.Candidate{FirstName: "Иван", LastName: "Петров"},
				Offer:       &dbmodels.Offer{Title: "Кладовщик"},
				CompanyID:   "company-1",
				Status:      models.MissionStatusCompleted,
				StartDate:   start,
				EndDate:     &end,
				Rating:      &rating,
				Note:        "отлично",
			},
			{
				CandidateID: "c2",
				OfferID:     "o2",
				CompanyID:   "company-1",
				Status:      models.MissionStatusOngoing,
				StartDate:   start,
			},
		}
		buf, err := impl{}.ExportMissionList(list)
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		rows, err := f.GetRows(missionSheet)
		require.Nil(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, []string{"Петров Иван", "Кладовщик", "company-1", "Завершена", "02.03.2026", "29.05.2026", "4", "отлично"}, rows[1])
		require.GreaterOrEqual(t, len(rows[2]), 5)
		require.Equal(t, []string{"c2", "o2", "company-1", "В работе", "02.03.2026"}, rows[2][:5])
	})
}
