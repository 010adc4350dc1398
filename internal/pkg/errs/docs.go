// Package errs provides the standardized error types used across the
// dispatch core.
//
// Every error kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks,
//   - a struct type carrying the error details,
//   - constructor functions with and without a cause,
//   - an Error() method for formatting,
//   - an Unwrap() method returning the sentinel.
//
// The dispatch-specific kinds map directly onto the outcomes a caller must
// distinguish: ObjectNotFoundError (a referenced task, change request, site
// or courier is absent), ForbiddenError (the caller lacks the role or is not
// the current assignee), FundInsufficientError (a cash movement would breach
// the site's fund rule; carries the requested amount and both fund figures),
// and InvalidTransitionError (a status change not permitted from the current
// state). The generic validation kinds (ValueIsRequiredError,
// ValueIsInvalidError, ValueIsOutOfRangeError) guard value-object and
// command construction.
package errs
