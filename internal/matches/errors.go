package matches

import (
	"errors"
	"fmt"

	"github.com/edvart/league-stats/internal/riotapi"
)

// Aggregation sentinel errors. Wrapped errors keep their provider cause.
var (
	ErrValidation       = errors.New("username and tag are required")
	ErrIdentityNotFound = errors.New("no account for this riot id")
	ErrUpstream         = errors.New("match provider request failed")
)

// Kind is the machine-readable failure class reported to API callers.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindIdentityNotFound Kind = "identity_not_found"
	KindUpstream         Kind = "upstream"
	KindInternal         Kind = "internal"
)

// KindOf classifies an aggregation error.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrIdentityNotFound):
		return KindIdentityNotFound
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	default:
		return KindInternal
	}
}

// upstreamError wraps a provider failure so that both ErrUpstream and the
// provider cause (e.g. *riotapi.StatusError) match with errors.Is/As.
type upstreamError struct {
	step  string
	cause error
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpstream, e.step, e.cause)
}

func (e *upstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.cause}
}

func upstream(step string, err error) error {
	return &upstreamError{step: step, cause: err}
}

func isNotFound(err error) bool {
	var statusErr *riotapi.StatusError
	return errors.As(err, &statusErr) && statusErr.NotFound()
}
