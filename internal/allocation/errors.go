package allocation

import (
	"context"
	"errors"
	"fmt"

	"team-allocation-service/internal/domain"
)

// NetworkError reports a request that never received an answer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ConflictError reports a member that was moved to another team by someone else.
type ConflictError struct {
	MemberID domain.MemberID
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("member %s: conflict: %v", e.MemberID, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a stale member or team id.
type NotFoundError struct {
	MemberID domain.MemberID
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("member %s: not found: %v", e.MemberID, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Outcome names the failure class of err for logs and metrics.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var (
		netErr      *NetworkError
		conflictErr *ConflictError
		notFoundErr *NotFoundError
	)
	switch {
	case errors.As(err, &netErr):
		return "network_error"
	case errors.As(err, &conflictErr):
		return "conflict"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
