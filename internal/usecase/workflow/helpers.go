package workflow

import (
	"github.com/shopspring/decimal"

	"sacco-loan-service/internal/domain/guarantor"
	"sacco-loan-service/internal/domain/review"
)

func guarantorDecision(approve bool) guarantor.Decision {
	if approve {
		return guarantor.DecisionApproved
	}
	return guarantor.DecisionRejected
}

func reviewDecision(approve bool) review.Decision {
	if approve {
		return review.DecisionApproved
	}
	return review.DecisionRejected
}

func decisionWord(approve bool) string {
	if approve {
		return "approved"
	}
	return "rejected"
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nullDecimalPtr(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
