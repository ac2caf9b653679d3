package weather

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// RefreshError aborts a refresh cycle. The previously published snapshot
// stays current.
type RefreshError struct {
	// StatusCode is the upstream HTTP status, zero when no response arrived.
	StatusCode int
	Timeout    bool
	Cause      error
}

func (e *RefreshError) Error() string {
	switch {
	case e.Timeout:
		return "timeout occurred while fetching weather data"
	case e.StatusCode != 0:
		return fmt.Sprintf("error fetching data: %d", e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("error communicating with weather API: %v", e.Cause)
	default:
		return "error communicating with weather API"
	}
}

func (e *RefreshError) Unwrap() error {
	return e.Cause
}

// asRefreshError classifies a provider failure.
func asRefreshError(err error) *RefreshError {
	var re *RefreshError
	if errors.As(err, &re) {
		return re
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &RefreshError{Timeout: true, Cause: err}
	}
	return &RefreshError{Cause: err}
}
