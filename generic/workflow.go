/*
workflow.go - Approval workflow status classifier

PURPOSE:
  Every request record is gated by one approval workflow. The engine never
  drives workflow transitions; it only reads where a workflow currently
  stands and decides whether the request it gates is in effect.

STATUS LIFECYCLE:
  draft ──▶ applied ──▶ approved (stage n) ──▶ completed
                │              │                   │
                ▼              ▼                   ▼
           withdrawn       reverted         cancel_applied / cancel_withdraw_applied
                                                   │
                                                   ▼
                                               cancelled

TWO READS:
  InEffect(id, completedOnly)
    Filter used by every day-classification query. With completedOnly the
    request must be completed; otherwise anything applied counts.

  Counts(id, includeCompleted)
    "Still relevant to the day" read used to decide whether a day is open
    for a new attendance request: completed (when included), cancel
    applied, cancel-withdraw applied, or approvable.

UNKNOWN IDS:
  A workflow id missing from the lookup reads as not applied. It never
  counts and is never in effect.
*/
package generic

// =============================================================================
// WORKFLOW
// =============================================================================

type WorkflowStatus string

const (
	WorkflowDraft                 WorkflowStatus = "draft"
	WorkflowApplied               WorkflowStatus = "applied"
	WorkflowApproved              WorkflowStatus = "approved" // intermediate stage approved
	WorkflowReverted              WorkflowStatus = "reverted"
	WorkflowWithdrawn             WorkflowStatus = "withdrawn"
	WorkflowCancelApplied         WorkflowStatus = "cancel_applied"
	WorkflowCancelWithdrawApplied WorkflowStatus = "cancel_withdraw_applied"
	WorkflowCancelled             WorkflowStatus = "cancelled"
	WorkflowCompleted             WorkflowStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case WorkflowDraft, WorkflowApplied, WorkflowApproved, WorkflowReverted, WorkflowWithdrawn,
		WorkflowCancelApplied, WorkflowCancelWithdrawApplied, WorkflowCancelled, WorkflowCompleted:
		return true
	}
	return false
}

// Workflow is the current state of one approval workflow. Stage is the
// approval stage the workflow sits at; a revert to stage 0 sends the request
// back to its applicant.
type Workflow struct {
	ID     WorkflowID
	Status WorkflowStatus
	Stage  int
}

// WorkflowLookup resolves workflow ids. Implementations must be safe for
// concurrent reads; the engine never writes through it.
type WorkflowLookup interface {
	Workflow(id WorkflowID) (Workflow, bool)
}

// WorkflowMap is the plain map lookup.
type WorkflowMap map[WorkflowID]Workflow

func (m WorkflowMap) Workflow(id WorkflowID) (Workflow, bool) {
	w, ok := m[id]
	return w, ok
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// WorkflowState is the six-way read of a workflow.
type WorkflowState int

const (
	StateNotApplied WorkflowState = iota
	StateApplied
	StateCompleted
	StateCancelApplied
	StateCancelWithdrawApplied
	StateApprovable
)

func (s WorkflowState) String() string {
	switch s {
	case StateApplied:
		return "applied"
	case StateCompleted:
		return "completed"
	case StateCancelApplied:
		return "cancel_applied"
	case StateCancelWithdrawApplied:
		return "cancel_withdraw_applied"
	case StateApprovable:
		return "approvable"
	default:
		return "not_applied"
	}
}

// Classifier reads workflow states through a lookup.
type Classifier struct {
	lookup WorkflowLookup
}

// NewClassifier wraps lookup. A nil lookup treats every id as unknown.
func NewClassifier(lookup WorkflowLookup) Classifier {
	return Classifier{lookup: lookup}
}

func (c Classifier) workflow(id WorkflowID) (Workflow, bool) {
	if c.lookup == nil {
		return Workflow{}, false
	}
	return c.lookup.Workflow(id)
}

// IsApplied is true for everything past draft that has not been withdrawn,
// cancelled or reverted to the applicant.
func (c Classifier) IsApplied(id WorkflowID) bool {
	w, ok := c.workflow(id)
	if !ok {
		return false
	}
	switch w.Status {
	case WorkflowDraft, WorkflowWithdrawn, WorkflowCancelled:
		return false
	case WorkflowReverted:
		return w.Stage > 0
	}
	return w.Status.Valid()
}

// IsCompleted is true once final approval is given.
func (c Classifier) IsCompleted(id WorkflowID) bool {
	w, ok := c.workflow(id)
	return ok && w.Status == WorkflowCompleted
}

func (c Classifier) IsCancelApplied(id WorkflowID) bool {
	w, ok := c.workflow(id)
	return ok && w.Status == WorkflowCancelApplied
}

func (c Classifier) IsCancelWithdrawApplied(id WorkflowID) bool {
	w, ok := c.workflow(id)
	return ok && w.Status == WorkflowCancelWithdrawApplied
}

// IsApprovable is true while an approver can still act on the workflow.
func (c Classifier) IsApprovable(id WorkflowID) bool {
	w, ok := c.workflow(id)
	if !ok {
		return false
	}
	switch w.Status {
	case WorkflowApplied, WorkflowApproved:
		return true
	case WorkflowReverted:
		return w.Stage > 0
	}
	return false
}

// Counts reports whether the gated request is still relevant to the day.
func (c Classifier) Counts(id WorkflowID, includeCompleted bool) bool {
	return (includeCompleted && c.IsCompleted(id)) ||
		c.IsCancelApplied(id) ||
		c.IsCancelWithdrawApplied(id) ||
		c.IsApprovable(id)
}

// InEffect is the request filter used by day classification.
func (c Classifier) InEffect(id WorkflowID, completedOnly bool) bool {
	if completedOnly {
		return c.IsCompleted(id)
	}
	return c.IsApplied(id)
}

// State folds the predicates into one value. A freshly submitted workflow
// reads as StateApplied; one already moving through approval stages reads
// as StateApprovable.
func (c Classifier) State(id WorkflowID) WorkflowState {
	switch {
	case !c.IsApplied(id):
		return StateNotApplied
	case c.IsCompleted(id):
		return StateCompleted
	case c.IsCancelApplied(id):
		return StateCancelApplied
	case c.IsCancelWithdrawApplied(id):
		return StateCancelWithdrawApplied
	}
	if w, _ := c.workflow(id); w.Status == WorkflowApplied {
		return StateApplied
	}
	return StateApprovable
}
