package botnotify

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ApiError ошибка api для бота оповещений
type ApiError struct {
	Code    int
	Method  string
	Path    string
	ActorID string
	Message string
}

func (e ApiError) Payload() string {
	return fmt.Sprintf(
		`{"code":%d,"method":%q,"path":%q,"actor":%q,"error":%q}`,
		e.Code, e.Method, e.Path, e.ActorID, e.Message)
}

func SendApiError(addr string, apiErr ApiError) error {
	resp, err := http.Post(addr, "application/json", strings.NewReader(apiErr.Payload()))
	if err != nil {
		return errors.Wrap(err, "ошибка отправки оповещения в бот")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("бот оповещений вернул статус %v", resp.StatusCode)
	}
	return nil
}
