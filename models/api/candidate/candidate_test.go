package candidateapimodels

import (
	"encoding/json"
	"staffing-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestProfileUpdate(t *testing.T) {
	t.Run(`moderated fields check`, func(t *testing.T) {
		for _, key := range []string{"approval_status", "reject_reason", "reviewed_by", "user_id", "id"} {
			_, err := ProfileUpdate{key: "approved"}.ToUpdMap()
			require.ErrorIs(t, err, models.ErrUnauthorized, key)
		}
	})

	t.Run(`unknown field check`, func(t *testing.T) {
		_, err := ProfileUpdate{"salary": 100}.ToUpdMap()
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run(`json body check`, func(t *testing.T) {
		var data ProfileUpdate
		body := `{"first_name":" Анна ","skills":["go","k8s"],"experience_years":3,"city":"Казань"}`
		require.Nil(t, json.Unmarshal([]byte(body), &data))
		updMap, err := data.ToUpdMap()
		require.Nil(t, err)
		require.Equal(t, map[string]interface{}{
			"FirstName":       "Анна",
			"Skills":          datatypes.JSONSlice[string]{"go", "k8s"},
			"ExperienceYears": 3,
			"City":            "Казань",
		}, updMap)
	})

	t.Run(`invalid values check`, func(t *testing.T) {
		_, err := ProfileUpdate{"experience_years": 1.5}.ToUpdMap()
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = ProfileUpdate{"skills": []interface{}{"go", 1}}.ToUpdMap()
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = ProfileUpdate{"email": "not-an-email"}.ToUpdMap()
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = ProfileUpdate{"last_name": "  "}.ToUpdMap()
		require.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestRegisterData(t *testing.T) {
	t.Run(`validate check`, func(t *testing.T) {
		data := RegisterData{FirstName: "Анна", LastName: "Смирнова", Email: "anna@example.com"}
		require.Nil(t, data.Validate())

		data.Email = ""
		require.ErrorIs(t, data.Validate(), models.ErrValidation)

		data.Email = "anna@example.com"
		data.LastName = ""
		require.ErrorIs(t, data.Validate(), models.ErrValidation)
	})
}
