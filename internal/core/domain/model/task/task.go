package task

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

var (
	// ErrTaskIsNotConstructed is returned when using an improperly initialized Task.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask")
	// ErrChangeDetailsRequired is returned when creating a change task without a breakdown.
	ErrChangeDetailsRequired = errs.NewValueIsRequiredError("change details")
	// ErrRefillDetailsRequired is returned when creating a refill task without a breakdown.
	ErrRefillDetailsRequired = errs.NewValueIsRequiredError("refill details")
)

// Attributes bundles the optional, kind-specific creation fields of a task.
type Attributes struct {
	Description string
	// Priority falls back to the kind default when empty.
	Priority Priority
	Change   *ChangeDetails
	Failure  *FailureDetails
	Refill   *RefillDetails
	// Amount is the cash figure for prize and expense tasks.
	Amount int
	// Photos are evidence URLs already stored by the image collaborator.
	Photos []string
}

// Snapshot is the full persisted state of a task, used to move the
// aggregate across the repository boundary.
type Snapshot struct {
	ID               kernel.UUID
	Kind             Kind
	SiteID           kernel.UUID
	CreatedBy        kernel.UUID
	AssignedTo       *kernel.UUID
	Status           Status
	Priority         Priority
	Description      string
	Change           *ChangeDetails
	Failure          *FailureDetails
	Refill           *RefillDetails
	Amount           int
	Photos           []string
	LocalConfirmed   bool
	CourierConfirmed bool
	CreatedAt        time.Time
	AssignedAt       *time.Time
	AcceptedAt       *time.Time
	InRouteAt        *time.Time
	OnSiteAt         *time.Time
	CompletedAt      *time.Time
}

// Task is the aggregate for a unit of field work. It owns the lifecycle
// state machine, the assignee check on every assignee-driven transition,
// and the dual-confirmation completion shortcut.
type Task struct {
	id               kernel.UUID
	kind             Kind
	siteID           kernel.UUID
	createdBy        kernel.UUID
	assignedTo       *kernel.UUID
	status           Status
	priority         Priority
	description      string
	change           *ChangeDetails
	failure          *FailureDetails
	refill           *RefillDetails
	amount           int
	photos           []string
	localConfirmed   bool
	courierConfirmed bool
	createdAt        time.Time
	assignedAt       *time.Time
	acceptedAt       *time.Time
	inRouteAt        *time.Time
	onSiteAt         *time.Time
	completedAt      *time.Time
	guard            guard.ConstructorGuard
}

// NewTask creates a task in created status. Kind-specific details are
// validated here; the fund-sufficiency gate for change tasks is the
// caller's responsibility because it needs the owning site.
func NewTask(id kernel.UUID, kind Kind, siteID, createdBy kernel.UUID, at time.Time, attrs Attributes) (*Task, error) {
	if err := errors.Join(id.Validate(), siteID.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}
	if _, err := KindFromString(string(kind)); err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	priority := attrs.Priority
	if priority == "" {
		priority = DefaultPriority(kind)
	} else if _, err := PriorityFromString(string(priority)); err != nil {
		return nil, err
	}

	switch kind {
	case KindChange:
		if attrs.Change == nil {
			return nil, ErrChangeDetailsRequired
		}
		if attrs.Change.Total() <= 0 {
			return nil, errs.NewValueIsInvalidError("change total")
		}
	case KindRefill:
		if attrs.Refill == nil {
			return nil, ErrRefillDetailsRequired
		}
		if _, err := RefillTypeFromString(string(attrs.Refill.Type)); err != nil {
			return nil, err
		}
		if attrs.Refill.Total() <= 0 {
			return nil, errs.NewValueIsInvalidError("refill total")
		}
	}

	return &Task{
		id:          id,
		kind:        kind,
		siteID:      siteID,
		createdBy:   createdBy,
		status:      StatusCreated,
		priority:    priority,
		description: attrs.Description,
		change:      attrs.Change,
		failure:     attrs.Failure,
		refill:      attrs.Refill,
		amount:      attrs.Amount,
		photos:      attrs.Photos,
		createdAt:   at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreTask reconstructs a task from its persisted snapshot.
func RestoreTask(snap Snapshot) (*Task, error) {
	if err := errors.Join(snap.ID.Validate(), snap.SiteID.Validate(), snap.CreatedBy.Validate()); err != nil {
		return nil, err
	}
	if _, err := StatusFromString(string(snap.Status)); err != nil {
		return nil, err
	}

	return &Task{
		id:               snap.ID,
		kind:             snap.Kind,
		siteID:           snap.SiteID,
		createdBy:        snap.CreatedBy,
		assignedTo:       snap.AssignedTo,
		status:           snap.Status,
		priority:         snap.Priority,
		description:      snap.Description,
		change:           snap.Change,
		failure:          snap.Failure,
		refill:           snap.Refill,
		amount:           snap.Amount,
		photos:           snap.Photos,
		localConfirmed:   snap.LocalConfirmed,
		courierConfirmed: snap.CourierConfirmed,
		createdAt:        snap.CreatedAt,
		assignedAt:       snap.AssignedAt,
		acceptedAt:       snap.AcceptedAt,
		inRouteAt:        snap.InRouteAt,
		onSiteAt:         snap.OnSiteAt,
		completedAt:      snap.CompletedAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Task was created through a constructor.
func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

// Snapshot returns the full persisted state of the task.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:               t.id,
		Kind:             t.kind,
		SiteID:           t.siteID,
		CreatedBy:        t.createdBy,
		AssignedTo:       t.assignedTo,
		Status:           t.status,
		Priority:         t.priority,
		Description:      t.description,
		Change:           t.change,
		Failure:          t.failure,
		Refill:           t.refill,
		Amount:           t.amount,
		Photos:           t.photos,
		LocalConfirmed:   t.localConfirmed,
		CourierConfirmed: t.courierConfirmed,
		CreatedAt:        t.createdAt,
		AssignedAt:       t.assignedAt,
		AcceptedAt:       t.acceptedAt,
		InRouteAt:        t.inRouteAt,
		OnSiteAt:         t.onSiteAt,
		CompletedAt:      t.completedAt,
	}
}

// ID returns the task's identity.
func (t *Task) ID() kernel.UUID { return t.id }

// Kind returns the task's work classification.
func (t *Task) Kind() Kind { return t.kind }

// SiteID returns the owning site.
func (t *Task) SiteID() kernel.UUID { return t.siteID }

// CreatedBy returns the creating actor's identity.
func (t *Task) CreatedBy() kernel.UUID { return t.createdBy }

// AssignedTo returns the current assignee, or nil when unassigned.
// Reassignment overwrites this reference; prior assignees are not retained.
func (t *Task) AssignedTo() *kernel.UUID { return t.assignedTo }

// Status returns the lifecycle status.
func (t *Task) Status() Status { return t.status }

// Priority returns the task priority.
func (t *Task) Priority() Priority { return t.priority }

// Description returns the free-form description.
func (t *Task) Description() string { return t.description }

// Change returns the change breakdown for change tasks, else nil.
func (t *Task) Change() *ChangeDetails { return t.change }

// Failure returns the failure context for failure tasks, else nil.
func (t *Task) Failure() *FailureDetails { return t.failure }

// Refill returns the refill breakdown for refill tasks, else nil.
func (t *Task) Refill() *RefillDetails { return t.refill }

// Amount returns the cash figure for prize and expense tasks.
func (t *Task) Amount() int { return t.amount }

// Photos returns the stored evidence URLs.
func (t *Task) Photos() []string { return t.photos }

// LocalConfirmed reports the site-side confirmation flag.
func (t *Task) LocalConfirmed() bool { return t.localConfirmed }

// CourierConfirmed reports the courier-side confirmation flag.
func (t *Task) CourierConfirmed() bool { return t.courierConfirmed }

// CreatedAt returns the creation time.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// AssignedAt returns the latest assignment time, or nil.
func (t *Task) AssignedAt() *time.Time { return t.assignedAt }

// AcceptedAt returns the acceptance time, or nil.
func (t *Task) AcceptedAt() *time.Time { return t.acceptedAt }

// InRouteAt returns the departure time, or nil.
func (t *Task) InRouteAt() *time.Time { return t.inRouteAt }

// OnSiteAt returns the arrival time, or nil.
func (t *Task) OnSiteAt() *time.Time { return t.onSiteAt }

// CompletedAt returns the completion time, or nil.
func (t *Task) CompletedAt() *time.Time { return t.completedAt }

// IsTerminal reports whether the task reached a terminal status.
func (t *Task) IsTerminal() bool { return t.status.IsTerminal() }

// IsAssignedTo reports whether the given identity is the current assignee.
func (t *Task) IsAssignedTo(id kernel.UUID) bool {
	return t.assignedTo != nil && t.assignedTo.IsEqual(id)
}

// Assign selects a courier for a freshly created or still-unaccepted task.
// Used by the creation-time auto-assignment; admin-driven replacement goes
// through Reassign.
func (t *Task) Assign(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if t.status != StatusCreated && t.status != StatusAssigned {
		return errs.NewInvalidTransitionError("Task", string(t.status), "assign")
	}

	t.assignedTo = &courierID
	t.status = StatusAssigned
	t.assignedAt = &at
	return nil
}

// Accept moves the task to accepted. Only the current assignee may accept;
// any other caller is rejected and the status is left unchanged.
func (t *Task) Accept(callerID kernel.UUID, at time.Time) error {
	if !t.IsAssignedTo(callerID) {
		return errs.NewForbiddenError("task is not assigned to the caller")
	}

	next, err := t.status.accept()
	if err != nil {
		return err
	}

	t.status = next
	t.acceptedAt = &at
	return nil
}

// Advance moves the task one step along the forward chain
// (accepted → in_route → on_site → in_process → completed). Only the
// current assignee may advance, and only to the immediate successor of the
// current status.
func (t *Task) Advance(callerID kernel.UUID, next Status, at time.Time) error {
	if !t.IsAssignedTo(callerID) {
		return errs.NewForbiddenError("task is not assigned to the caller")
	}

	newStatus, err := t.status.advanceTo(next)
	if err != nil {
		return err
	}
	t.status = newStatus

	switch newStatus {
	case StatusInRoute:
		t.inRouteAt = &at
	case StatusOnSite:
		t.onSiteAt = &at
	case StatusCompleted:
		t.completedAt = &at
	}
	return nil
}

// Confirm records a confirmation from the site or the courier side. When
// both sides have confirmed a non-terminal task it completes on the spot,
// wherever it sits in the forward chain. A completion caused by the second
// confirmation is reported via the returned flag so the caller can run
// completion side effects exactly once.
func (t *Task) Confirm(role actor.Role, at time.Time) (completed bool, err error) {
	if t.IsTerminal() {
		return false, errs.NewInvalidTransitionError("Task", string(t.status), "confirm")
	}

	switch role {
	case actor.RoleSite:
		t.localConfirmed = true
	case actor.RoleCourier:
		t.courierConfirmed = true
	default:
		return false, errs.NewForbiddenError("only the site or the courier may confirm a task")
	}

	if t.localConfirmed && t.courierConfirmed {
		t.status = StatusCompleted
		t.completedAt = &at
		return true, nil
	}
	return false, nil
}

// Reassign overwrites the assignee from any non-terminal status and resets
// the acceptance and travel timestamps. The previous assignee is not
// retained on the aggregate.
func (t *Task) Reassign(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	next, err := t.status.reassign()
	if err != nil {
		return err
	}

	t.assignedTo = &courierID
	t.status = next
	t.assignedAt = &at
	t.acceptedAt = nil
	t.inRouteAt = nil
	t.onSiteAt = nil
	return nil
}

// Cancel terminates the task from any non-terminal status (admin action).
func (t *Task) Cancel() error {
	next, err := t.status.cancel()
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// AttachPhotos appends stored evidence URLs.
func (t *Task) AttachPhotos(urls []string) {
	t.photos = append(t.photos, urls...)
}

// FundCreditOnCompletion returns the amount credited to the site's float
// when this task completes. Only reserve refills carry a credit; change
// tasks deliberately do not debit here — cash actually leaves the float
// through the change-request flow only.
func (t *Task) FundCreditOnCompletion() int {
	if t.kind == KindRefill && t.refill != nil && t.refill.Type == RefillReserve {
		return t.refill.Total()
	}
	return 0
}
