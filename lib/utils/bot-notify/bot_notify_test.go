package botnotify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendApiError(t *testing.T) {
	t.Run(`payload check`, func(t *testing.T) {
		var got map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		err := SendApiError(srv.URL, ApiError{Code: 500, Method: "PUT", Path: "/space/mission/:id/rate", ActorID: "u1", Message: "ошибка \"бд\""})
		require.Nil(t, err)
		require.Equal(t, float64(500), got["code"])
		require.Equal(t, "/space/mission/:id/rate", got["path"])
		require.Equal(t, "ошибка \"бд\"", got["error"])
	})

	t.Run(`bad status check`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		require.NotNil(t, SendApiError(srv.URL, ApiError{Code: 500}))
	})
}
