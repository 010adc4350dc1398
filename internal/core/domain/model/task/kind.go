package task

import "fieldops/internal/pkg/errs"

// Kind classifies the field work a task carries.
type Kind string

const (
	// KindChange is a cash-denomination exchange at a site.
	KindChange Kind = "change"
	// KindFailure is a machine-failure response visit.
	KindFailure Kind = "failure"
	// KindPrize is a prize payout.
	KindPrize Kind = "prize"
	// KindRefill is a cash-box refill (drawer or reserve).
	KindRefill Kind = "refill"
	// KindExpense is a site expense run.
	KindExpense Kind = "expense"
	// KindAlert is an urgent alert raised by a site (panic button).
	KindAlert Kind = "alert"
)

// KindFromString maps a wire-level kind tag onto the closed enum.
func KindFromString(s string) (Kind, error) {
	switch Kind(s) {
	case KindChange, KindFailure, KindPrize, KindRefill, KindExpense, KindAlert:
		return Kind(s), nil
	default:
		return "", errs.NewValueIsInvalidError("kind")
	}
}

// Priority orders tasks for the field agents' attention.
type Priority string

const (
	// PriorityLow marks work that can wait.
	PriorityLow Priority = "low"
	// PriorityNormal is the default priority.
	PriorityNormal Priority = "normal"
	// PriorityHigh marks work that should preempt normal tasks.
	PriorityHigh Priority = "high"
	// PriorityUrgent marks emergencies.
	PriorityUrgent Priority = "urgent"
)

// PriorityFromString maps a wire-level priority tag onto the closed enum.
func PriorityFromString(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	default:
		return "", errs.NewValueIsInvalidError("priority")
	}
}

// DefaultPriority returns the priority a kind gets when the creator does
// not choose one: failures run high, alerts urgent, everything else normal.
func DefaultPriority(kind Kind) Priority {
	switch kind {
	case KindFailure:
		return PriorityHigh
	case KindAlert:
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// RefillType distinguishes where refill cash lands.
type RefillType string

const (
	// RefillDrawer refills the machine cash drawer; it does not touch the
	// site fund.
	RefillDrawer RefillType = "drawer"
	// RefillReserve refills the site's reserve fund; completing such a task
	// credits the site's float.
	RefillReserve RefillType = "reserve"
)

// RefillTypeFromString maps a wire-level refill type onto the closed enum.
func RefillTypeFromString(s string) (RefillType, error) {
	switch RefillType(s) {
	case RefillDrawer, RefillReserve:
		return RefillType(s), nil
	default:
		return "", errs.NewValueIsInvalidError("refillType")
	}
}

// ChangeDetails carries the denomination breakdown of a change task.
type ChangeDetails struct {
	Coins5  int
	Coins10 int
}

// Total returns the cash amount the change distributes.
func (d ChangeDetails) Total() int {
	return d.Coins5 + d.Coins10
}

// FailureDetails carries the machine-failure context of a failure task.
type FailureDetails struct {
	MachineID        *string
	ErrorCode        string
	ErrorDescription string
	ClientName       string
}

// RefillDetails carries the breakdown of a refill task.
type RefillDetails struct {
	Type           RefillType
	Coins5         int
	Coins10        int
	PersonInCharge string
}

// Total returns the cash amount the refill moves.
func (d RefillDetails) Total() int {
	return d.Coins5 + d.Coins10
}
