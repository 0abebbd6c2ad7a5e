package workflow

import (
	"sacco-loan-service/internal/domain/application"
)

// Action identifies one gate of the approval pipeline.
type Action string

const (
	ActionGuarantorConsensus   Action = "guarantor_consensus"
	ActionHRReview             Action = "hr_review"
	ActionOfficerDecision      Action = "loan_officer_decision"
	ActionCommitteeDecision    Action = "committee_decision"
	ActionAccountantProcessing Action = "accountant_processing"
	ActionDisburse             Action = "disburse"
	ActionComplete             Action = "complete"
)

// transition encodes one row of the legality table: which status an action
// may fire from, which roles may fire it, and where approve/reject land.
// An empty onReject means the action is not a reject gate. An empty roles
// slice means role authorization is decided elsewhere (guarantor-set
// membership for the consensus gate).
type transition struct {
	from      application.Status
	roles     []application.Role
	onApprove application.Status
	onReject  application.Status
}

// transitions is the whole state machine. Adding a stage is a table edit.
var transitions = map[Action]transition{
	ActionGuarantorConsensus: {
		from:      application.StatusPending,
		onApprove: application.StatusGuarantorApproved,
		onReject:  application.StatusRejected,
	},
	ActionHRReview: {
		from:      application.StatusGuarantorApproved,
		roles:     []application.Role{application.RoleHROfficer, application.RoleAdmin},
		onApprove: application.StatusHRReviewed,
		// HR is advisory: it records facts and always advances.
	},
	ActionOfficerDecision: {
		from:      application.StatusHRReviewed,
		roles:     []application.Role{application.RoleLoanOfficer, application.RoleAdmin},
		onApprove: application.StatusLoanOfficerApproved,
		onReject:  application.StatusRejected,
	},
	ActionCommitteeDecision: {
		from:      application.StatusLoanOfficerApproved,
		roles:     []application.Role{application.RoleCommitteeMember, application.RoleAdmin},
		onApprove: application.StatusCommitteeApproved,
		onReject:  application.StatusRejected,
	},
	ActionAccountantProcessing: {
		from:      application.StatusCommitteeApproved,
		roles:     []application.Role{application.RoleAccountant, application.RoleAdmin},
		onApprove: application.StatusPaymentProcessing,
	},
	ActionDisburse: {
		from:      application.StatusPaymentProcessing,
		roles:     []application.Role{application.RoleAccountant, application.RoleAdmin},
		onApprove: application.StatusDisbursed,
	},
	ActionComplete: {
		from:      application.StatusDisbursed,
		roles:     []application.Role{application.RoleAccountant, application.RoleAdmin},
		onApprove: application.StatusCompleted,
	},
}

// Next validates one gate firing and returns the resulting status.
// The role check runs before the status check so an unauthorized caller
// learns nothing about the application's position in the pipeline.
func Next(a Action, current application.Status, role application.Role, approve bool) (application.Status, error) {
	t, ok := transitions[a]
	if !ok {
		return "", application.ErrInvalidTransition
	}
	if len(t.roles) > 0 && !roleAllowed(t.roles, role) {
		return "", application.ErrUnauthorized
	}
	if current != t.from {
		return "", application.ErrInvalidTransition
	}
	if approve {
		return t.onApprove, nil
	}
	if t.onReject == "" {
		return "", application.ErrInvalidTransition
	}
	return t.onReject, nil
}

func roleAllowed(allowed []application.Role, r application.Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
