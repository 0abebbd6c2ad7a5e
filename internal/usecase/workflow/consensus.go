package workflow

import (
	"sacco-loan-service/internal/domain/guarantor"
)

// Resolution is the outcome of evaluating the guarantor set.
type Resolution int

const (
	// ResolutionOpen: at least one guarantor has not responded yet.
	ResolutionOpen Resolution = iota
	// ResolutionApproved: everyone responded, everyone approved.
	ResolutionApproved
	// ResolutionRejected: everyone responded and at least one rejected.
	ResolutionRejected
)

// Resolve evaluates the consensus sub-protocol over the full guarantor set.
// The gate stays open until every nominated guarantor has responded; a single
// rejection then rejects the whole application regardless of response order.
//
// An empty set trivially resolves approved; the submission path guards
// against zero-guarantor applications so this never drives a transition.
func Resolve(approvals []guarantor.Approval) Resolution {
	rejected := false
	for _, a := range approvals {
		switch a.Decision {
		case guarantor.DecisionPending:
			return ResolutionOpen
		case guarantor.DecisionRejected:
			rejected = true
		}
	}
	if rejected {
		return ResolutionRejected
	}
	return ResolutionApproved
}
