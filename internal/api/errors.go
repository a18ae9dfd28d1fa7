package api

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// APIError carries the HTTP status and whatever the backend said about the
// failure. REST failures are surfaced as-is; there is no retry layer here.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Status)
}

func newAPIError(resp *resty.Response) *APIError {
	body := resp.Body()
	message := ""
	if strings.Contains(resp.Header().Get("Content-Type"), "application/json") {
		if detail := gjson.GetBytes(body, "detail"); detail.Exists() {
			message = detail.String()
		} else if msg := gjson.GetBytes(body, "message"); msg.Exists() {
			message = msg.String()
		}
	} else {
		message = strings.TrimSpace(string(body))
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Message:    message,
		Body:       body,
	}
}
