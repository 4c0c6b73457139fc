package proposalhandler

import (
	"staffing-backend/db"
	"staffing-backend/db/dbtest"
	placementhandler "staffing-backend/lib/placement"
	proposalstore "staffing-backend/lib/proposal/store"
	"staffing-backend/models"
	proposalapimodels "staffing-backend/models/api/proposal"
	dbmodels "staffing-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newTestHandler(gdb *gorm.DB) Provider {
	return NewInstance(gdb, placementhandler.NewInstance(gdb, nil), nil)
}

var (
	approve = proposalapimodels.AdminReviewData{Decision: models.DecisionApprove}
	accept  = proposalapimodels.CompanyReviewData{Decision: models.DecisionAccept}
	refuse  = proposalapimodels.CompanyReviewData{Decision: models.DecisionCompanyReject, Reason: "нет опыта"}
)

func TestApply(t *testing.T) {
	t.Run(`apply check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")

		id, err := i.ApplyAsCandidate(candidate.UserID, offer.ID)
		require.Nil(t, err)
		rec := dbtest.ReloadProposal(t, gdb, id)
		require.Equal(t, models.OriginCandidateApplication, rec.Origin)
		require.Equal(t, models.AdminStatusPending, rec.AdminStatus)
		require.Equal(t, models.CompanyStatusPending, rec.CompanyStatus)
		require.Equal(t, "company-1", rec.CompanyID)

		_, err = i.ApplyAsCandidate(candidate.UserID, offer.ID)
		require.ErrorIs(t, err, models.ErrDuplicateProposal)
		require.Equal(t, int64(1), dbtest.CountProposals(t, gdb, offer.ID))

		_, err = i.ApplyAsCandidate(candidate.UserID, "unknown")
		require.ErrorIs(t, err, models.ErrNotFound)
		_, err = i.ApplyAsCandidate("unknown", offer.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run(`apply not approved check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		for _, status := range []models.CandidateStatus{models.CandidateStatusPending, models.CandidateStatusRejected} {
			candidate := dbtest.AddCandidate(t, gdb, status)
			_, err := i.ApplyAsCandidate(candidate.UserID, offer.ID)
			require.ErrorIs(t, err, models.ErrInvalidTransition)
		}
		require.Equal(t, int64(0), dbtest.CountProposals(t, gdb, offer.ID))
	})

	t.Run(`apply paused offer check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		require.Nil(t, gdb.Model(&dbmodels.Offer{}).Where("id = ?", offer.ID).Update("status", models.OfferStatusPaused).Error)

		_, err := i.ApplyAsCandidate(candidate.UserID, offer.ID)
		require.ErrorIs(t, err, models.ErrInvalidTransition)
	})

	t.Run(`concurrent apply check`, func(t *testing.T) {
		check := func(t *testing.T, gdb *gorm.DB) {
			i := newTestHandler(gdb)
			candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
			offer := dbtest.AddOffer(t, gdb, dbtest.NewCompanyID())

			results := make([]error, 2)
			g := errgroup.Group{}
			for n := range results {
				g.Go(func() error {
					_, results[n] = i.ApplyAsCandidate(candidate.UserID, offer.ID)
					return nil
				})
			}
			require.Nil(t, g.Wait())

			succeeded := 0
			for _, err := range results {
				if err == nil {
					succeeded++
					continue
				}
				require.ErrorIs(t, err, models.ErrDuplicateProposal)
			}
			require.Equal(t, 1, succeeded)
			require.Equal(t, int64(1), dbtest.CountProposals(t, gdb, offer.ID))
		}

		// sqlite с одним соединением выполняет транзакции по очереди, проверяется только итог.
		// Гонку за уникальный индекс проверяет вариант на postgres
		t.Run(`sqlite check`, func(t *testing.T) {
			check(t, dbtest.NewSQLite(t))
		})

		t.Run(`postgres check`, func(t *testing.T) {
			gdb := dbtest.NewPostgres(t)
			for n := 0; n < 10; n++ {
				check(t, gdb)
			}
		})
	})

	t.Run(`propose by admin check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		pending := dbtest.AddCandidate(t, gdb, models.CandidateStatusPending)

		id, err := i.ProposeByAdmin("admin-1", proposalapimodels.ProposeData{CandidateID: pending.ID, OfferID: offer.ID})
		require.Nil(t, err)
		rec := dbtest.ReloadProposal(t, gdb, id)
		require.Equal(t, models.OriginAdminPlacement, rec.Origin)
		require.Equal(t, models.AdminStatusApproved, rec.AdminStatus)
		require.Equal(t, "admin-1", rec.CreatedBy)

		_, err = i.ProposeByAdmin("admin-1", proposalapimodels.ProposeData{CandidateID: pending.ID, OfferID: offer.ID})
		require.ErrorIs(t, err, models.ErrDuplicateProposal)

		rejected := dbtest.AddCandidate(t, gdb, models.CandidateStatusRejected)
		_, err = i.ProposeByAdmin("admin-1", proposalapimodels.ProposeData{CandidateID: rejected.ID, OfferID: offer.ID})
		require.ErrorIs(t, err, models.ErrInvalidTransition)

		_, err = i.ProposeByAdmin("admin-1", proposalapimodels.ProposeData{OfferID: offer.ID})
		require.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestReview(t *testing.T) {
	t.Run(`admin review check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusPending)

		require.Nil(t, i.AdminReview("admin-1", proposal.ID, approve))
		rec := dbtest.ReloadProposal(t, gdb, proposal.ID)
		require.Equal(t, models.AdminStatusApproved, rec.AdminStatus)
		require.Equal(t, "admin-1", rec.AdminReviewedBy)
		require.NotNil(t, rec.AdminReviewedAt)

		require.ErrorIs(t, i.AdminReview("admin-1", proposal.ID, approve), models.ErrInvalidTransition)
		require.ErrorIs(t, i.AdminReview("admin-1", "unknown", approve), models.ErrNotFound)
		require.ErrorIs(t, i.AdminReview("admin-1", proposal.ID, proposalapimodels.AdminReviewData{Decision: "maybe"}), models.ErrValidation)
	})

	t.Run(`company review before moderation check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		pending := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusPending)

		require.ErrorIs(t, i.CompanyReview("company-1", "user-1", pending.ID, accept), models.ErrInvalidTransition)

		require.Nil(t, i.AdminReview("admin-1", pending.ID, proposalapimodels.AdminReviewData{Decision: models.DecisionReject}))
		require.ErrorIs(t, i.CompanyReview("company-1", "user-1", pending.ID, accept), models.ErrInvalidTransition)
		require.ErrorIs(t, i.AdminReview("admin-1", pending.ID, approve), models.ErrInvalidTransition)
		require.Nil(t, dbtest.ReloadOffer(t, gdb, offer.ID).PlacedCandidateID)
	})

	t.Run(`company review other company check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusApproved)

		require.ErrorIs(t, i.CompanyReview("company-2", "user-2", proposal.ID, accept), models.ErrUnauthorized)
		require.Equal(t, models.CompanyStatusPending, dbtest.ReloadProposal(t, gdb, proposal.ID).CompanyStatus)
	})

	t.Run(`company reject check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusApproved)

		require.Nil(t, i.CompanyReview("company-1", "user-1", proposal.ID, refuse))
		rec := dbtest.ReloadProposal(t, gdb, proposal.ID)
		require.Equal(t, models.CompanyStatusRejected, rec.CompanyStatus)
		require.Equal(t, "нет опыта", rec.CompanyReason)
		require.Equal(t, models.OfferStatusActive, dbtest.ReloadOffer(t, gdb, offer.ID).Status)

		require.ErrorIs(t, i.CompanyReview("company-1", "user-1", proposal.ID, accept), models.ErrInvalidTransition)
	})

	t.Run(`company accept check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusApproved)

		require.Nil(t, i.CompanyReview("company-1", "user-1", proposal.ID, accept))
		require.Equal(t, models.CompanyStatusAccepted, dbtest.ReloadProposal(t, gdb, proposal.ID).CompanyStatus)
		offerRec := dbtest.ReloadOffer(t, gdb, offer.ID)
		require.Equal(t, models.OfferStatusFilled, offerRec.Status)
		require.NotNil(t, offerRec.PlacedCandidateID)
		require.Equal(t, candidate.ID, *offerRec.PlacedCandidateID)

		mission := dbmodels.Mission{}
		require.Nil(t, gdb.Where("proposal_id = ?", proposal.ID).First(&mission).Error)
		require.Equal(t, models.MissionStatusOngoing, mission.Status)
		require.Equal(t, candidate.ID, mission.CandidateID)
		require.Equal(t, "company-1", mission.CompanyID)
		require.Nil(t, mission.Rating)
	})

	t.Run(`sibling after placement check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		first := dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusApproved)
		second := dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusApproved)

		require.Nil(t, i.CompanyReview("company-1", "user-1", first.ID, accept))
		require.ErrorIs(t, i.CompanyReview("company-1", "user-1", second.ID, accept), models.ErrOfferAlreadyFilled)
		require.Equal(t, models.CompanyStatusPending, dbtest.ReloadProposal(t, gdb, second.ID).CompanyStatus)
		require.Nil(t, i.CompanyReview("company-1", "user-1", second.ID, refuse))
	})

	t.Run(`rejected candidate check`, func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		i := newTestHandler(gdb)
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusApproved)
		require.Nil(t, gdb.Model(&dbmodels.Candidate{}).Where("id = ?", candidate.ID).Update("approval_status", models.CandidateStatusRejected).Error)

		require.ErrorIs(t, i.CompanyReview("company-1", "user-1", proposal.ID, accept), models.ErrInvalidTransition)
		require.ErrorIs(t, i.CompanyReview("company-1", "user-1", proposal.ID, refuse), models.ErrInvalidTransition)
		require.Nil(t, dbtest.ReloadOffer(t, gdb, offer.ID).PlacedCandidateID)
	})
}

func TestConcurrentAccept(t *testing.T) {
	check := func(t *testing.T, gdb *gorm.DB, companyID string) {
		i := newTestHandler(gdb)
		offer := dbtest.AddOffer(t, gdb, companyID)
		proposals := []dbmodels.Proposal{
			dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusApproved),
			dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusApproved),
		}

		results := make([]error, len(proposals))
		g := errgroup.Group{}
		for n, proposal := range proposals {
			g.Go(func() error {
				results[n] = i.CompanyReview(companyID, "user-1", proposal.ID, accept)
				return nil
			})
		}
		require.Nil(t, g.Wait())

		winner := -1
		for n, err := range results {
			if err == nil {
				require.Equal(t, -1, winner)
				winner = n
				continue
			}
			require.ErrorIs(t, err, models.ErrOfferAlreadyFilled)
		}
		require.NotEqual(t, -1, winner)
		loser := 1 - winner

		offerRec := dbtest.ReloadOffer(t, gdb, offer.ID)
		require.Equal(t, models.OfferStatusFilled, offerRec.Status)
		require.NotNil(t, offerRec.PlacedCandidateID)
		require.Equal(t, proposals[winner].CandidateID, *offerRec.PlacedCandidateID)
		require.Equal(t, models.CompanyStatusAccepted, dbtest.ReloadProposal(t, gdb, proposals[winner].ID).CompanyStatus)
		require.Equal(t, models.CompanyStatusPending, dbtest.ReloadProposal(t, gdb, proposals[loser].ID).CompanyStatus)

		var missions int64
		require.Nil(t, gdb.Model(&dbmodels.Mission{}).Where("offer_id = ?", offer.ID).Count(&missions).Error)
		require.Equal(t, int64(1), missions)
	}

	// sqlite с одним соединением выполняет транзакции по очереди, проверяется только итог.
	// Гонку условных обновлений вакансии проверяет вариант на postgres
	t.Run(`sqlite check`, func(t *testing.T) {
		check(t, dbtest.NewSQLite(t), "company-1")
	})

	t.Run(`postgres check`, func(t *testing.T) {
		gdb := dbtest.NewPostgres(t)
		for n := 0; n < 10; n++ {
			check(t, gdb, dbtest.NewCompanyID())
		}
	})
}

func TestVisibility(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	i := newTestHandler(gdb)
	offer := dbtest.AddOffer(t, gdb, "company-1")
	approved := dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusApproved)
	pending := dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusPending)
	rejected := dbtest.AddProposal(t, gdb, dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved), offer, models.AdminStatusRejected)
	withdrawnCandidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
	withdrawn := dbtest.AddProposal(t, gdb, withdrawnCandidate, offer, models.AdminStatusApproved)
	require.Nil(t, gdb.Model(&dbmodels.Candidate{}).Where("id = ?", withdrawnCandidate.ID).Update("approval_status", models.CandidateStatusRejected).Error)

	company := models.Actor{ID: "user-1", Role: models.CompanyRole, CompanyID: "company-1"}
	admin := models.Actor{ID: "admin-1", Role: models.AdminRole}

	t.Run(`company list check`, func(t *testing.T) {
		list, rowCount, err := i.ListForCompany("company-1", proposalapimodels.ProposalFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Len(t, list, 1)
		require.Equal(t, approved.ID, list[0].ID)

		list, rowCount, err = i.ListForCompany("company-2", proposalapimodels.ProposalFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(0), rowCount)
		require.Empty(t, list)
	})

	t.Run(`company get check`, func(t *testing.T) {
		item, err := i.Get(company, approved.ID)
		require.Nil(t, err)
		require.Equal(t, "Петров Иван", item.CandidateName)
		for _, id := range []string{pending.ID, rejected.ID, withdrawn.ID} {
			_, err = i.Get(company, id)
			require.ErrorIs(t, err, models.ErrNotFound)
		}
		_, err = i.Get(models.Actor{ID: "user-2", Role: models.CompanyRole, CompanyID: "company-2"}, approved.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run(`admin list check`, func(t *testing.T) {
		list, rowCount, err := i.ListForAdmin(proposalapimodels.ProposalFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(3), rowCount)
		require.Len(t, list, 3)

		list, rowCount, err = i.ListForAdmin(proposalapimodels.ProposalFilter{AdminStatus: models.AdminStatusPending})
		require.Nil(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Equal(t, pending.ID, list[0].ID)

		_, err = i.Get(admin, withdrawn.ID)
		require.Nil(t, err)
	})
}

func TestImmutablePair(t *testing.T) {
	check := func(t *testing.T, gdb *gorm.DB) {
		candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
		offer := dbtest.AddOffer(t, gdb, "company-1")
		other := dbtest.AddOffer(t, gdb, dbtest.NewCompanyID())
		proposal := dbtest.AddProposal(t, gdb, candidate, offer, models.AdminStatusPending)

		unchanged := func(t *testing.T) {
			rec := dbtest.ReloadProposal(t, gdb, proposal.ID)
			require.Equal(t, offer.ID, rec.OfferID)
			require.Equal(t, candidate.ID, rec.CandidateID)
			require.Equal(t, offer.CompanyID, rec.CompanyID)
		}
		byID := func() *dbmodels.Proposal {
			return &dbmodels.Proposal{BaseModel: dbmodels.BaseModel{ID: proposal.ID}}
		}

		t.Run(`store check`, func(t *testing.T) {
			store := proposalstore.NewInstance(gdb)
			err := store.Update(proposal.ID, map[string]interface{}{"offer_id": other.ID})
			require.ErrorIs(t, err, models.ErrUnauthorized)
			err = store.Update(proposal.ID, map[string]interface{}{"CandidateID": "other"})
			require.ErrorIs(t, err, models.ErrUnauthorized)
			err = store.Update(proposal.ID, map[string]interface{}{"CompanyID": other.CompanyID})
			require.ErrorIs(t, err, models.ErrUnauthorized)
			require.Nil(t, store.Update(proposal.ID, map[string]interface{}{"AdminReason": "уточнить опыт"}))
			unchanged(t)
		})

		t.Run(`model hook check`, func(t *testing.T) {
			err := gdb.Model(byID()).Update("offer_id", other.ID).Error
			require.ErrorIs(t, err, models.ErrUnauthorized)
			unchanged(t)
		})

		t.Run(`update column check`, func(t *testing.T) {
			err := gdb.Model(byID()).UpdateColumn("offer_id", other.ID).Error
			require.NotNil(t, err)
			require.True(t, db.IsImmutablePairErr(err))
			err = gdb.Model(byID()).UpdateColumns(map[string]interface{}{"candidate_id": other.ID, "company_id": other.CompanyID}).Error
			require.True(t, db.IsImmutablePairErr(err))
			unchanged(t)
		})

		t.Run(`save check`, func(t *testing.T) {
			rec := dbtest.ReloadProposal(t, gdb, proposal.ID)
			rec.OfferID = other.ID
			rec.CompanyID = other.CompanyID
			err := gdb.Omit(clause.Associations).Save(&rec).Error
			require.True(t, db.IsImmutablePairErr(err))
			unchanged(t)
		})

		t.Run(`raw sql check`, func(t *testing.T) {
			err := gdb.Exec("UPDATE proposals SET offer_id = ? WHERE id = ?", other.ID, proposal.ID).Error
			require.True(t, db.IsImmutablePairErr(err))
			unchanged(t)
		})

		t.Run(`status update allowed check`, func(t *testing.T) {
			err := gdb.Model(byID()).UpdateColumn("admin_reason", "повторная проверка").Error
			require.Nil(t, err)
			require.Equal(t, "повторная проверка", dbtest.ReloadProposal(t, gdb, proposal.ID).AdminReason)
		})
	}

	t.Run(`sqlite check`, func(t *testing.T) {
		check(t, dbtest.NewSQLite(t))
	})

	t.Run(`postgres check`, func(t *testing.T) {
		check(t, dbtest.NewPostgres(t))
	})
}

func TestHistory(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	i := newTestHandler(gdb)
	candidate := dbtest.AddCandidate(t, gdb, models.CandidateStatusApproved)
	offer := dbtest.AddOffer(t, gdb, "company-1")

	id, err := i.ApplyAsCandidate(candidate.UserID, offer.ID)
	require.Nil(t, err)
	require.Nil(t, i.AdminReview("admin-1", id, approve))
	require.Nil(t, i.CompanyReview("company-1", "user-1", id, refuse))

	list, err := i.History(id)
	require.Nil(t, err)
	require.Len(t, list, 3)
	require.Equal(t, models.TrackCreated, list[0].Track)
	require.Equal(t, candidate.UserID, list[0].ActorID)
	require.Equal(t, models.TrackAdmin, list[1].Track)
	require.Equal(t, string(models.AdminStatusApproved), list[1].Status)
	require.Equal(t, models.TrackCompany, list[2].Track)
	require.Equal(t, string(models.CompanyStatusRejected), list[2].Status)
	require.Equal(t, "нет опыта", list[2].Reason)

	_, err = i.History("unknown")
	require.ErrorIs(t, err, models.ErrNotFound)

	list2, _, err := i.ListForCandidate(candidate.UserID, proposalapimodels.ProposalFilter{})
	require.Nil(t, err)
	require.Len(t, list2, 1)
	require.Equal(t, id, list2[0].ID)
}
