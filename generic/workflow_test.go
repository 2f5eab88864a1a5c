package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/attendance-engine/generic"
)

func classifierFor(workflows ...generic.Workflow) generic.Classifier {
	m := generic.WorkflowMap{}
	for _, w := range workflows {
		m[w.ID] = w
	}
	return generic.NewClassifier(m)
}

func TestClassifier_StatusTable(t *testing.T) {
	tests := []struct {
		name        string
		wf          generic.Workflow
		applied     bool
		completed   bool
		approvable  bool
		counts      bool // includeCompleted = false
		countsWithC bool // includeCompleted = true
		state       generic.WorkflowState
	}{
		{"draft", generic.Workflow{Status: generic.WorkflowDraft}, false, false, false, false, false, generic.StateNotApplied},
		{"applied", generic.Workflow{Status: generic.WorkflowApplied}, true, false, true, true, true, generic.StateApplied},
		{"approved stage", generic.Workflow{Status: generic.WorkflowApproved, Stage: 2}, true, false, true, true, true, generic.StateApprovable},
		{"reverted to applicant", generic.Workflow{Status: generic.WorkflowReverted, Stage: 0}, false, false, false, false, false, generic.StateNotApplied},
		{"reverted to stage", generic.Workflow{Status: generic.WorkflowReverted, Stage: 1}, true, false, true, true, true, generic.StateApprovable},
		{"withdrawn", generic.Workflow{Status: generic.WorkflowWithdrawn}, false, false, false, false, false, generic.StateNotApplied},
		{"cancel applied", generic.Workflow{Status: generic.WorkflowCancelApplied}, true, false, false, true, true, generic.StateCancelApplied},
		{"cancel withdraw applied", generic.Workflow{Status: generic.WorkflowCancelWithdrawApplied}, true, false, false, true, true, generic.StateCancelWithdrawApplied},
		{"cancelled", generic.Workflow{Status: generic.WorkflowCancelled}, false, false, false, false, false, generic.StateNotApplied},
		{"completed", generic.Workflow{Status: generic.WorkflowCompleted}, true, true, false, false, true, generic.StateCompleted},
		{"unknown status", generic.Workflow{Status: "bogus"}, false, false, false, false, false, generic.StateNotApplied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wf.ID = 1
			c := classifierFor(tt.wf)

			assert.Equal(t, tt.applied, c.IsApplied(1), "applied")
			assert.Equal(t, tt.completed, c.IsCompleted(1), "completed")
			assert.Equal(t, tt.approvable, c.IsApprovable(1), "approvable")
			assert.Equal(t, tt.counts, c.Counts(1, false), "counts")
			assert.Equal(t, tt.countsWithC, c.Counts(1, true), "counts including completed")
			assert.Equal(t, tt.state, c.State(1))
		})
	}
}

func TestClassifier_UnknownIDNeverCounts(t *testing.T) {
	// GIVEN: A lookup that does not know workflow 99
	c := classifierFor(generic.Workflow{ID: 1, Status: generic.WorkflowCompleted})

	// THEN: 99 reads as not applied everywhere
	assert.False(t, c.IsApplied(99))
	assert.False(t, c.Counts(99, true))
	assert.False(t, c.InEffect(99, false))
	assert.False(t, c.InEffect(99, true))
	assert.Equal(t, generic.StateNotApplied, c.State(99))
	assert.Equal(t, "not_applied", c.State(99).String())
}

func TestClassifier_NilLookup(t *testing.T) {
	c := generic.NewClassifier(nil)
	assert.False(t, c.IsApplied(1))
	assert.False(t, c.Counts(1, true))
}

func TestClassifier_InEffect(t *testing.T) {
	c := classifierFor(
		generic.Workflow{ID: 1, Status: generic.WorkflowApplied},
		generic.Workflow{ID: 2, Status: generic.WorkflowCompleted},
	)

	assert.True(t, c.InEffect(1, false))
	assert.False(t, c.InEffect(1, true), "applied is not completed")
	assert.True(t, c.InEffect(2, false))
	assert.True(t, c.InEffect(2, true))
}
