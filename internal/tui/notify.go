package tui

import (
	"errors"
	"time"

	"github.com/ingberrio/erp-sub001/internal/restapi"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

// requestTimeout bounds every API call a screen issues.
const requestTimeout = 15 * time.Second

// notifyRemote converts a non-validation failure into a notice. Remote
// errors surface the server's message with field details flattened in;
// scope and load errors pass through as-is.
func notifyRemote(alerts *usecase.Alerts, err error) {
	var remote *restapi.RemoteError
	if errors.As(err, &remote) {
		alerts.NotifyError(remote.Message, remote.Details)
		return
	}
	alerts.NotifyError(err.Error(), nil)
}
