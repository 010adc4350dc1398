package changerequest

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// ErrChangeRequestIsNotConstructed is returned when using an improperly
// initialized ChangeRequest.
var ErrChangeRequestIsNotConstructed = errors.New("ChangeRequest must be created via NewChangeRequest or RestoreChangeRequest")

// Status is a change request's position in its approval lifecycle.
type Status string

const (
	// StatusPending means the request awaits an admin decision.
	StatusPending Status = "pending"
	// StatusApproved means an admin approved the exchange; cash has not moved.
	StatusApproved Status = "approved"
	// StatusRejected is terminal: an admin declined the exchange.
	StatusRejected Status = "rejected"
	// StatusCompleted is terminal: the exchange happened and the fund was
	// debited.
	StatusCompleted Status = "completed"
)

// StatusFromString maps a wire-level status tag onto the closed enum.
func StatusFromString(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidError("status")
	}
}

// IsTerminal reports whether no further transitions exist from the status.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Snapshot is the full persisted state of a change request.
type Snapshot struct {
	ID              kernel.UUID
	SiteID          kernel.UUID
	RequestedBy     kernel.UUID
	AssignedCourier *kernel.UUID
	ApprovedBy      *kernel.UUID
	Status          Status
	Coins5          int
	Coins10         int
	TotalAmount     int
	Notes           string
	RejectionReason string
	CreatedAt       time.Time
	DecidedAt       *time.Time
	CompletedAt     *time.Time
}

// ChangeRequest is the aggregate for a site-initiated cash exchange. Unlike
// a change task, completing a change request debits the site fund; the
// sufficiency rule at creation is the lenient one (fund must merely cover
// the amount, the minimum may be breached).
type ChangeRequest struct {
	id              kernel.UUID
	siteID          kernel.UUID
	requestedBy     kernel.UUID
	assignedCourier *kernel.UUID
	approvedBy      *kernel.UUID
	status          Status
	coins5          int
	coins10         int
	totalAmount     int
	notes           string
	rejectionReason string
	createdAt       time.Time
	decidedAt       *time.Time
	completedAt     *time.Time
	guard           guard.ConstructorGuard
}

// NewChangeRequest creates a pending change request. The total must be
// positive; fund sufficiency is checked by the caller against the owning
// site.
func NewChangeRequest(id kernel.UUID, siteID, requestedBy kernel.UUID, coins5, coins10 int, notes string, at time.Time) (*ChangeRequest, error) {
	if err := errors.Join(id.Validate(), siteID.Validate(), requestedBy.Validate()); err != nil {
		return nil, err
	}
	if coins5 < 0 || coins10 < 0 {
		return nil, errs.NewValueIsInvalidError("denomination breakdown")
	}
	total := coins5 + coins10
	if total <= 0 {
		return nil, errs.NewValueIsInvalidError("total amount")
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &ChangeRequest{
		id:          id,
		siteID:      siteID,
		requestedBy: requestedBy,
		status:      StatusPending,
		coins5:      coins5,
		coins10:     coins10,
		totalAmount: total,
		notes:       notes,
		createdAt:   at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreChangeRequest reconstructs a change request from its snapshot.
func RestoreChangeRequest(snap Snapshot) (*ChangeRequest, error) {
	if err := errors.Join(snap.ID.Validate(), snap.SiteID.Validate(), snap.RequestedBy.Validate()); err != nil {
		return nil, err
	}
	if _, err := StatusFromString(string(snap.Status)); err != nil {
		return nil, err
	}

	return &ChangeRequest{
		id:              snap.ID,
		siteID:          snap.SiteID,
		requestedBy:     snap.RequestedBy,
		assignedCourier: snap.AssignedCourier,
		approvedBy:      snap.ApprovedBy,
		status:          snap.Status,
		coins5:          snap.Coins5,
		coins10:         snap.Coins10,
		totalAmount:     snap.TotalAmount,
		notes:           snap.Notes,
		rejectionReason: snap.RejectionReason,
		createdAt:       snap.CreatedAt,
		decidedAt:       snap.DecidedAt,
		completedAt:     snap.CompletedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the ChangeRequest was created through a constructor.
func (r *ChangeRequest) Validate() error {
	if r == nil {
		return ErrChangeRequestIsNotConstructed
	}
	return r.guard.Validate(ErrChangeRequestIsNotConstructed)
}

// Snapshot returns the full persisted state of the change request.
func (r *ChangeRequest) Snapshot() Snapshot {
	return Snapshot{
		ID:              r.id,
		SiteID:          r.siteID,
		RequestedBy:     r.requestedBy,
		AssignedCourier: r.assignedCourier,
		ApprovedBy:      r.approvedBy,
		Status:          r.status,
		Coins5:          r.coins5,
		Coins10:         r.coins10,
		TotalAmount:     r.totalAmount,
		Notes:           r.notes,
		RejectionReason: r.rejectionReason,
		CreatedAt:       r.createdAt,
		DecidedAt:       r.decidedAt,
		CompletedAt:     r.completedAt,
	}
}

// ID returns the request's identity.
func (r *ChangeRequest) ID() kernel.UUID { return r.id }

// SiteID returns the requesting site.
func (r *ChangeRequest) SiteID() kernel.UUID { return r.siteID }

// RequestedBy returns the creating actor's identity.
func (r *ChangeRequest) RequestedBy() kernel.UUID { return r.requestedBy }

// AssignedCourier returns the courier matched at creation or chosen at
// approval, or nil.
func (r *ChangeRequest) AssignedCourier() *kernel.UUID { return r.assignedCourier }

// ApprovedBy returns the approving admin, or nil.
func (r *ChangeRequest) ApprovedBy() *kernel.UUID { return r.approvedBy }

// Status returns the approval lifecycle status.
func (r *ChangeRequest) Status() Status { return r.status }

// Coins5 returns the 5-denomination part of the breakdown.
func (r *ChangeRequest) Coins5() int { return r.coins5 }

// Coins10 returns the 10-denomination part of the breakdown.
func (r *ChangeRequest) Coins10() int { return r.coins10 }

// TotalAmount returns the cash amount the exchange moves.
func (r *ChangeRequest) TotalAmount() int { return r.totalAmount }

// Notes returns the requester's free-form notes.
func (r *ChangeRequest) Notes() string { return r.notes }

// RejectionReason returns the admin's reason when rejected.
func (r *ChangeRequest) RejectionReason() string { return r.rejectionReason }

// CreatedAt returns the creation time.
func (r *ChangeRequest) CreatedAt() time.Time { return r.createdAt }

// DecidedAt returns the approval or rejection time, or nil.
func (r *ChangeRequest) DecidedAt() *time.Time { return r.decidedAt }

// CompletedAt returns the completion time, or nil.
func (r *ChangeRequest) CompletedAt() *time.Time { return r.completedAt }

// IsTerminal reports whether the request reached a terminal status.
func (r *ChangeRequest) IsTerminal() bool { return r.status.IsTerminal() }

// AutoAssign records the courier the dispatcher matched at creation time.
// It never advances the status: the request stays pending until an admin
// decides, and the admin may still override the courier on approval.
func (r *ChangeRequest) AutoAssign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if r.status != StatusPending {
		return errs.NewInvalidTransitionError("ChangeRequest", string(r.status), "assign")
	}

	r.assignedCourier = &courierID
	return nil
}

// Approve moves a pending request to approved, recording the deciding
// admin. A non-nil courierID overrides the auto-assigned courier.
func (r *ChangeRequest) Approve(adminID kernel.UUID, courierID *kernel.UUID, at time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if r.status != StatusPending {
		return errs.NewInvalidTransitionError("ChangeRequest", string(r.status), "approve")
	}

	r.status = StatusApproved
	r.approvedBy = &adminID
	if courierID != nil {
		r.assignedCourier = courierID
	}
	r.decidedAt = &at
	return nil
}

// Reject moves a pending request to rejected with the admin's reason.
func (r *ChangeRequest) Reject(adminID kernel.UUID, reason string, at time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if r.status != StatusPending {
		return errs.NewInvalidTransitionError("ChangeRequest", string(r.status), "reject")
	}

	r.status = StatusRejected
	r.approvedBy = &adminID
	r.rejectionReason = reason
	r.decidedAt = &at
	return nil
}

// Complete moves an approved request to completed. The caller debits the
// site fund in the same transaction; completing from any other status is
// rejected, which also rules out a double debit.
func (r *ChangeRequest) Complete(at time.Time) error {
	if r.status != StatusApproved {
		return errs.NewInvalidTransitionError("ChangeRequest", string(r.status), "complete")
	}

	r.status = StatusCompleted
	r.completedAt = &at
	return nil
}
