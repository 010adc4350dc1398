package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is the sentinel for absent referenced objects.
	ErrObjectNotFound = errors.New("object not found")
	// ErrForbidden is the sentinel for operations the caller may not perform.
	ErrForbidden = errors.New("operation forbidden")
	// ErrFundInsufficient is the sentinel for cash movements breaching a site's fund rule.
	ErrFundInsufficient = errors.New("fund insufficient")
	// ErrInvalidTransition is the sentinel for status changes not permitted from the current state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ObjectNotFoundError indicates a referenced object (task, change request,
// site, courier) does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named reference.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ForbiddenError indicates the caller lacks the required role or is not the
// current assignee of the object being mutated.
type ForbiddenError struct {
	Reason string
}

// NewForbiddenError creates a ForbiddenError with a caller-facing reason.
func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// FundInsufficientError indicates a requested cash movement would breach the
// owning site's fund rule. It carries all three figures so the caller can
// act on them.
type FundInsufficientError struct {
	Requested   int
	CurrentFund int
	MinimumFund int
}

// NewFundInsufficientError creates a FundInsufficientError carrying the
// requested amount and both fund figures.
func NewFundInsufficientError(requested, currentFund, minimumFund int) *FundInsufficientError {
	return &FundInsufficientError{Requested: requested, CurrentFund: currentFund, MinimumFund: minimumFund}
}

func (e *FundInsufficientError) Error() string {
	return fmt.Sprintf("%s: requested %d, current fund %d, minimum fund %d",
		ErrFundInsufficient, e.Requested, e.CurrentFund, e.MinimumFund)
}

func (e *FundInsufficientError) Unwrap() error {
	return ErrFundInsufficient
}

// InvalidTransitionError indicates an attempted status change that the
// transition table rejects from the current state.
type InvalidTransitionError struct {
	Entity string
	From   string
	Action string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// entity, current status and attempted action.
func NewInvalidTransitionError(entity, from, action string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, Action: action}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s from status %q", ErrInvalidTransition, e.Entity, e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
