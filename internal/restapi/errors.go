package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RemoteError is a non-2xx API response. Message comes from the response
// body when it carries one; Details holds field-level failures the server
// attached, keyed by field name.
type RemoteError struct {
	Status  int
	Message string
	Details map[string][]string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// NotFound reports whether the server said the record no longer exists.
func (e *RemoteError) NotFound() bool { return e.Status == http.StatusNotFound }

// parseRemoteError extracts message and field details from an error body.
// The API is not consistent: the message may live under "message" or
// "error", and details under "errors" as either a string or a list per
// field. An undecodable body falls back to the HTTP status text.
func parseRemoteError(status int, raw []byte) *RemoteError {
	remote := &RemoteError{Status: status, Message: http.StatusText(status)}

	var body struct {
		Message string                     `json:"message"`
		Error   string                     `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return remote
	}

	switch {
	case body.Message != "":
		remote.Message = body.Message
	case body.Error != "":
		remote.Message = body.Error
	}

	if len(body.Errors) > 0 {
		remote.Details = make(map[string][]string, len(body.Errors))
		for field, value := range body.Errors {
			var list []string
			if err := json.Unmarshal(value, &list); err == nil {
				remote.Details[field] = list
				continue
			}
			var single string
			if err := json.Unmarshal(value, &single); err == nil {
				remote.Details[field] = []string{single}
			}
		}
	}
	return remote
}
