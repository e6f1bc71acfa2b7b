package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrPlanNotFound is returned by a PlanStore when no plan has the requested ID.
var ErrPlanNotFound = errors.New("plan not found")

// HTTPError is a non-2xx answer from the text-generation service. The retry
// decorator inspects StatusCode and RetryAfter.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Body       string        // truncated response body
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Temporary reports whether the request may succeed if sent again.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
