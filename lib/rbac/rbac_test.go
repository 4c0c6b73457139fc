package rbac

import (
	"staffing-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/space/proposal/{id}/review [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/space/proposal/123-321/review"
		require.True(t, r1.MatchString(validUri))
		invalidUri := "/api/v1/space/proposal/review"
		require.False(t, r1.MatchString(invalidUri))

		_, _, err = parseSwaggerPattern("/api/v1/space/proposal/{id}/review")
		require.NotNil(t, err)
	})

	i := NewInstance()
	candidate := models.Actor{ID: "user-1", Role: models.CandidateRole}
	company := models.Actor{ID: "user-2", Role: models.CompanyRole, CompanyID: "company-1"}
	detached := models.Actor{ID: "user-3", Role: models.CompanyRole}
	admin := models.Actor{ID: "admin-1", Role: models.AdminRole}

	t.Run(`company rules check`, func(t *testing.T) {
		uri := "/api/v1/space/proposal/5b7e/review"
		handler, found := i.GetRuleFunc("put", uri)
		require.True(t, found)
		require.True(t, handler(company, uri))
		require.False(t, handler(detached, uri))
		require.False(t, handler(candidate, uri))
		require.False(t, handler(admin, uri))

		_, found = i.GetRuleFunc("delete", uri)
		require.False(t, found)
	})

	t.Run(`admin rules check`, func(t *testing.T) {
		uri := "/api/v1/admin_panel/placement/"
		handler, found := i.GetRuleFunc("POST", uri)
		require.True(t, found)
		require.True(t, handler(admin, uri))
		require.False(t, handler(company, uri))
	})

	t.Run(`candidate rules check`, func(t *testing.T) {
		uri := "/api/v1/candidate/offers/7f1c/apply"
		handler, found := i.GetRuleFunc("POST", uri)
		require.True(t, found)
		require.True(t, handler(candidate, uri))
		require.False(t, handler(company, uri))
	})

	t.Run(`permissions check`, func(t *testing.T) {
		perms := i.GetPermissions(models.CompanyRole)
		require.ElementsMatch(t, []models.Permission{models.ViewPermission, models.FlowPermission, models.ExportPermission}, perms[models.MissionModule])
		require.NotContains(t, perms, models.ModerationModule)
		require.Contains(t, i.GetPermissions(models.AdminRole), models.ModerationModule)
	})
}
