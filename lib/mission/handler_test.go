package missionhandler

import (
	"staffing-backend/db/dbtest"
	xlsexport "staffing-backend/lib/export/xls"
	placementhandler "staffing-backend/lib/placement"
	"staffing-backend/models"
	missionapimodels "staffing-backend/models/api/mission"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var company = models.Actor{ID: "user-1", Role: models.CompanyRole, CompanyID: "company-1"}

// addMission размещенный кандидат, при ended миссия сразу завершена
func addMission(t *testing.T, gdb *gorm.DB, ended bool) string {
	t.Helper()
	placement := placementhandler.NewInstance(gdb, nil)
	candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
	offer := dbtest.AddOffer(t, gdb, "company-1")
	proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusApproved)
	var missionID string
	err := gdb.Transaction(func(tx *gorm.DB) (err error) {
		missionID, err = placement.CommitPlacement(tx, proposal, company.ID, "")
		return err
	})
	require.Nil(t, err)
	if ended {
		require.Nil(t, placement.EndMission(company, missionID))
	}
	return missionID
}

func TestRate(t *testing.T) {
	t.Run(`rating bounds check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := NewInstance(gdb, nil, xlsexport.NewInstance())
		missionID := addMission(t, gdb, true)

		for _, rating := range []int{0, 6, -1} {
			err := i.Rate("company-1", missionID, missionapimodels.RateData{Rating: rating})
			require.ErrorIs(t, err, models.ErrInvalidRating)
		}
		require.Nil(t, dbtest.ReloadMission(t, gdb, missionID).Rating)

		for rating := models.MinRating; rating <= models.MaxRating; rating++ {
			require.Nil(t, i.Rate("company-1", missionID, missionapimodels.RateData{Rating: rating, Note: "хорошо"}))
			rec := dbtest.ReloadMission(t, gdb, missionID)
			require.NotNil(t, rec.Rating)
			require.Equal(t, rating, *rec.Rating)
			require.Equal(t, "хорошо", rec.Note)
		}
	})

	t.Run(`rate ongoing check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := NewInstance(gdb, nil, xlsexport.NewInstance())
		missionID := addMission(t, gdb, false)

		require.ErrorIs(t, i.Rate("company-1", missionID, missionapimodels.RateData{Rating: 4}), models.ErrInvalidTransition)
		require.ErrorIs(t, i.Rate("company-1", missionID, missionapimodels.RateData{Rating: 7}), models.ErrInvalidRating)
	})

	t.Run(`rate other company check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := NewInstance(gdb, nil, xlsexport.NewInstance())
		missionID := addMission(t, gdb, true)

		require.ErrorIs(t, i.Rate("company-2", missionID, missionapimodels.RateData{Rating: 4}), models.ErrUnauthorized)
		require.ErrorIs(t, i.Rate("company-1", "unknown", missionapimodels.RateData{Rating: 4}), models.ErrNotFound)
	})

	t.Run(`rerate check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := NewInstance(gdb, nil, xlsexport.NewInstance())
		missionID := addMission(t, gdb, true)

		require.Nil(t, i.Rate("company-1", missionID, missionapimodels.RateData{Rating: 2}))
		first := dbtest.ReloadMission(t, gdb, missionID)
		require.NotNil(t, first.RatedAt)
		require.Nil(t, i.Rate("company-1", missionID, missionapimodels.RateData{Rating: 5}))
		second := dbtest.ReloadMission(t, gdb, missionID)
		require.Equal(t, 5, *second.Rating)
		require.False(t, second.RatedAt.Before(*first.RatedAt))
	})

	t.Run(`note length check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := NewInstance(gdb, nil, xlsexport.NewInstance())
		missionID := addMission(t, gdb, true)

		note := strings.Repeat("я", missionapimodels.MaxNoteLength+1)
		require.ErrorIs(t, i.Rate("company-1", missionID, missionapimodels.RateData{Rating: 3, Note: note}), models.ErrValidation)
	})
}

func TestMissionList(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	i := NewInstance(gdb, nil, xlsexport.NewInstance())
	ongoingID := addMission(t, gdb, false)
	completedID := addMission(t, gdb, true)

	t.Run(`get check`, func(t *testing.T) {
		item, err := i.Get(company, ongoingID)
		require.Nil(t, err)
		require.Equal(t, "Петров Иван", item.CandidateName)
		require.Equal(t, "Оператор склада", item.OfferTitle)

		_, err = i.Get(models.Actor{ID: "user-2", Role: models.CompanyRole, CompanyID: "company-2"}, ongoingID)
		require.ErrorIs(t, err, models.ErrUnauthorized)
		_, err = i.Get(models.Actor{ID: "admin-1", Role: models.AdminRole}, ongoingID)
		require.Nil(t, err)
	})

	t.Run(`list check`, func(t *testing.T) {
		list, rowCount, err := i.List("company-1", missionapimodels.MissionFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(2), rowCount)
		require.Len(t, list, 2)

		list, rowCount, err = i.List("company-1", missionapimodels.MissionFilter{Status: models.MissionStatusCompleted})
		require.Nil(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Equal(t, completedID, list[0].ID)

		_, rowCount, err = i.List("company-2", missionapimodels.MissionFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(0), rowCount)
	})

	t.Run(`export check`, func(t *testing.T) {
		buf, err := i.Export("company-1")
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		rows, err := f.GetRows("Миссии")
		require.Nil(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, "Кандидат", rows[0][0])
		require.Equal(t, "Петров Иван", rows[1][0])
	})
}
