// Package shared provides small helpers for the adapters.
package shared

import (
	"fmt"
	"net/http"
)

// StatusError is the cause recorded for a non-2xx HTTP response.
type StatusError struct {
	Status int
	URL    string
	Body   string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("status=%d (%s) url=%s response=%s", e.Status, http.StatusText(e.Status), e.URL, e.Body)
}

// HTTPStatusErrorWithBody creates a StatusError for a response body.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return StatusError{Status: status, URL: url, Body: body}
}
