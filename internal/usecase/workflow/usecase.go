package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/notification"
	"sacco-loan-service/internal/domain/review"
	"sacco-loan-service/internal/domain/schedule"
	"sacco-loan-service/internal/domain/uow"
	"sacco-loan-service/pkg/fincalc"
)

// Usecase drives every workflow transition. Each operation runs inside a
// transaction with the application row locked for update, so concurrent
// actions on the same application serialize and a gate resolves at most once.
// Notification rows are persisted in the same transaction; external delivery
// happens only after commit.
type Usecase struct {
	uow      uow.UnitOfWork
	notifier notification.Notifier
}

func NewUsecase(tx uow.UnitOfWork, n notification.Notifier) *Usecase {
	return &Usecase{uow: tx, notifier: n}
}

// RespondAsGuarantor records one guarantor's decision and re-evaluates the
// consensus gate. The application only leaves pending once every nominated
// guarantor has responded; a single rejection rejects the whole application.
func (u *Usecase) RespondAsGuarantor(ctx context.Context, in GuarantorResponseInput) (*TransitionDTO, error) {
	if u.uow == nil {
		return nil, application.ErrInvalidTransition
	}
	var (
		dto     *TransitionDTO
		pending []notification.Notification
	)

	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) error {
		// nomination first: a caller who was never nominated learns nothing
		// about where the application is in the workflow
		ga, err := r.Guarantors.GetForGuarantor(ctx, a.ID, in.GuarantorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return application.ErrUnauthorized
			}
			return err
		}
		if a.Status != application.StatusPending {
			return application.ErrInvalidTransition
		}
		if ga.Responded() {
			return application.ErrAlreadyResponded
		}

		now := time.Now().UTC()
		ga.Decision = guarantorDecision(in.Approve)
		ga.Declaration = in.Declaration
		ga.Comments = in.Comments
		ga.RespondedAt = &now
		if err := r.Guarantors.Save(ctx, ga); err != nil {
			return err
		}

		all, err := r.Guarantors.ListByApplication(ctx, a.ID)
		if err != nil {
			return err
		}

		switch Resolve(all) {
		case ResolutionOpen:
			pending = append(pending, notificationFor(a, notification.TypeGuarantorResponse,
				"Guarantor Response Received",
				fmt.Sprintf("A guarantor has %s your loan application. Waiting for other guarantors to respond.", decisionWord(in.Approve))))

		case ResolutionApproved:
			next, err := Next(ActionGuarantorConsensus, a.Status, "", true)
			if err != nil {
				return err
			}
			a.Status = next
			a.StatusUpdatedAt = now
			a.StampTransition(next, now)
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
			if err := ensurePendingReview(ctx, r, a.ID, review.StageHR); err != nil {
				return err
			}
			pending = append(pending, notificationFor(a, notification.TypeGuarantorResponse,
				"Guarantor Approval Complete",
				"All guarantors have approved your loan application. Your application is now being reviewed by HR."))

		case ResolutionRejected:
			next, err := Next(ActionGuarantorConsensus, a.Status, "", false)
			if err != nil {
				return err
			}
			a.Status = next
			a.StatusUpdatedAt = now
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
			pending = append(pending, notificationFor(a, notification.TypeRejected,
				"Loan Application Rejected",
				"Your loan application was rejected by one or more guarantors."))
		}

		if err := persistNotifications(ctx, r, pending); err != nil {
			return err
		}
		dto = transitionDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.deliver(ctx, pending)
	return dto, nil
}

// SubmitHRReview records the salary/debt facts. HR is advisory: it cannot
// reject, and the application always advances to loan-officer review.
func (u *Usecase) SubmitHRReview(ctx context.Context, in HRReviewInput) (*TransitionDTO, error) {
	return u.transition(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) ([]notification.Notification, error) {
		next, err := Next(ActionHRReview, a.Status, in.Role, true)
		if err != nil {
			return nil, err
		}
		if in.MonthlySalary.IsNegative() || in.EmployerDebts.IsNegative() || in.FinancialDebts.IsNegative() {
			return nil, fmt.Errorf("%w: HR facts must not be negative", application.ErrValidation)
		}

		now := time.Now().UTC()
		err = completeReview(ctx, r, a.ID, review.StageHR, func(rev *review.StageReview) {
			rev.ReviewerID = &in.ReviewerID
			rev.Decision = review.DecisionApproved
			rev.MonthlySalary = nullDecimal(in.MonthlySalary)
			rev.EmployerDebts = nullDecimal(in.EmployerDebts)
			rev.FinancialDebts = nullDecimal(in.FinancialDebts)
			rev.DepartmentAdvice = in.DepartmentAdvice
			rev.Comments = in.Comments
			rev.ReviewedAt = &now
		})
		if err != nil {
			return nil, err
		}

		a.Status = next
		a.StatusUpdatedAt = now
		a.StampTransition(next, now)
		if err := r.Applications.Save(ctx, a); err != nil {
			return nil, err
		}
		if err := ensurePendingReview(ctx, r, a.ID, review.StageLoanOfficer); err != nil {
			return nil, err
		}
		return []notification.Notification{notificationFor(a, notification.TypeStatusChange,
			"Loan Status: HR Reviewed",
			"Your loan application has passed HR review and moved to the loan officer.")}, nil
	})
}

// SubmitOfficerDecision resolves the loan-officer gate. An approval may carry
// an adjusted amount, which becomes the final approved amount and forces
// recalculation of the derived fields.
func (u *Usecase) SubmitOfficerDecision(ctx context.Context, in OfficerDecisionInput) (*TransitionDTO, error) {
	return u.transition(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) ([]notification.Notification, error) {
		next, err := Next(ActionOfficerDecision, a.Status, in.Role, in.Approve)
		if err != nil {
			return nil, err
		}
		if err := validateAdjustment(a, in.AdjustedAmount); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		err = completeReview(ctx, r, a.ID, review.StageLoanOfficer, func(rev *review.StageReview) {
			rev.ReviewerID = &in.OfficerID
			rev.Decision = reviewDecision(in.Approve)
			rev.AdjustedAmount = nullDecimalPtr(in.AdjustedAmount)
			rev.Comments = in.Comments
			rev.ReviewedAt = &now
		})
		if err != nil {
			return nil, err
		}

		if !in.Approve {
			return u.reject(ctx, r, a, next, now, "Your loan application was rejected by the loan officer.")
		}

		if in.AdjustedAmount != nil {
			a.FinalApprovedAmount = *in.AdjustedAmount
		}
		if err := applyTerms(a); err != nil {
			return nil, err
		}
		a.Status = next
		a.StatusUpdatedAt = now
		a.StampTransition(next, now)
		if err := r.Applications.Save(ctx, a); err != nil {
			return nil, err
		}
		if err := ensurePendingReview(ctx, r, a.ID, review.StageCommittee); err != nil {
			return nil, err
		}
		return []notification.Notification{notificationFor(a, notification.TypeStatusChange,
			"Loan Status: Loan Officer Approved",
			"Your loan application was approved by the loan officer and moved to the committee.")}, nil
	})
}

// SubmitCommitteeDecision resolves the committee gate; same shape as the
// loan-officer gate.
func (u *Usecase) SubmitCommitteeDecision(ctx context.Context, in CommitteeDecisionInput) (*TransitionDTO, error) {
	return u.transition(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) ([]notification.Notification, error) {
		next, err := Next(ActionCommitteeDecision, a.Status, in.Role, in.Approve)
		if err != nil {
			return nil, err
		}
		if err := validateAdjustment(a, in.FinalAmount); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		err = completeReview(ctx, r, a.ID, review.StageCommittee, func(rev *review.StageReview) {
			rev.ReviewerID = &in.MemberID
			rev.Decision = reviewDecision(in.Approve)
			rev.AdjustedAmount = nullDecimalPtr(in.FinalAmount)
			rev.Comments = in.Comments
			rev.ReviewedAt = &now
		})
		if err != nil {
			return nil, err
		}

		if !in.Approve {
			return u.reject(ctx, r, a, next, now, "Your loan application was rejected by the committee.")
		}

		if in.FinalAmount != nil {
			a.FinalApprovedAmount = *in.FinalAmount
		}
		if err := applyTerms(a); err != nil {
			return nil, err
		}
		a.Status = next
		a.StatusUpdatedAt = now
		a.StampTransition(next, now)
		if err := r.Applications.Save(ctx, a); err != nil {
			return nil, err
		}
		if err := ensurePendingReview(ctx, r, a.ID, review.StageAccountant); err != nil {
			return nil, err
		}
		return []notification.Notification{notificationFor(a, notification.TypeStatusChange,
			"Loan Status: Committee Approved",
			"Your loan application was approved by the committee. Payment is being processed.")}, nil
	})
}

// SubmitAccountantProcessing records the payment method and details. Not a
// decision gate; always advances to payment processing.
func (u *Usecase) SubmitAccountantProcessing(ctx context.Context, in AccountantProcessingInput) (*TransitionDTO, error) {
	return u.transition(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) ([]notification.Notification, error) {
		next, err := Next(ActionAccountantProcessing, a.Status, in.Role, true)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		err = completeReview(ctx, r, a.ID, review.StageAccountant, func(rev *review.StageReview) {
			rev.ReviewerID = &in.AccountantID
			rev.Decision = review.DecisionApproved
			rev.PaymentMethod = in.PaymentMethod
			rev.BankDetails = in.BankDetails
			rev.ProcessingNotes = in.ProcessingNotes
			rev.ReviewedAt = &now
		})
		if err != nil {
			return nil, err
		}

		a.Status = next
		a.StatusUpdatedAt = now
		a.StampTransition(next, now)
		if err := r.Applications.Save(ctx, a); err != nil {
			return nil, err
		}
		return []notification.Notification{notificationFor(a, notification.TypeStatusChange,
			"Loan Status: Payment Processing",
			"Your loan payment is being processed.")}, nil
	})
}

// Disburse releases the funds and generates the repayment schedule. The
// schedule is replaced wholesale, never appended, so regeneration is
// idempotent.
func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*TransitionDTO, error) {
	return u.transition(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) ([]notification.Notification, error) {
		next, err := Next(ActionDisburse, a.Status, in.Role, true)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		specs, err := fincalc.Schedule(a.TotalAmount, a.MonthlyRepayment, a.Period, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", application.ErrValidation, err)
		}
		entries := make([]schedule.Installment, 0, len(specs))
		for _, s := range specs {
			entries = append(entries, schedule.Installment{
				ApplicationID: a.ID,
				Number:        s.Number,
				DueDate:       s.DueDate,
				Amount:        s.Amount,
			})
		}
		if err := r.Installments.Replace(ctx, a.ID, entries); err != nil {
			return nil, err
		}

		a.Status = next
		a.StatusUpdatedAt = now
		a.StampTransition(next, now)
		if err := r.Applications.Save(ctx, a); err != nil {
			return nil, err
		}
		return []notification.Notification{notificationFor(a, notification.TypeStatusChange,
			"Loan Status: Disbursed",
			"Your loan has been disbursed. The repayment schedule is now active.")}, nil
	})
}

// RecordPayment appends to the payment ledger and marks every installment the
// cumulative ledger total covers, oldest first. Partial payments accumulate
// across ledger entries until an installment is covered. Bookkeeping only: no
// status transition is implied.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) error {
	if u.uow == nil {
		return application.ErrInvalidTransition
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", application.ErrValidation)
	}
	return u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) error {
		if a.Status != application.StatusDisbursed {
			return application.ErrInvalidTransition
		}
		p := &schedule.Payment{
			ApplicationID:   a.ID,
			Amount:          in.Amount,
			PaymentMethod:   in.PaymentMethod,
			ReferenceNumber: in.ReferenceNumber,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		paid, err := r.Payments.TotalPaid(ctx, a.ID)
		if err != nil {
			return err
		}
		installments, err := r.Installments.ListByApplication(ctx, a.ID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		covered := decimal.Zero
		for i := range installments {
			inst := &installments[i]
			covered = covered.Add(inst.Amount)
			if covered.GreaterThan(paid) {
				break
			}
			if inst.IsPaid {
				continue
			}
			inst.IsPaid = true
			inst.PaidAt = &now
			if err := r.Installments.Save(ctx, inst); err != nil {
				return err
			}
		}
		return nil
	})
}

// Complete marks a fully repaid disbursed loan as completed.
func (u *Usecase) Complete(ctx context.Context, in CompleteInput) (*TransitionDTO, error) {
	return u.transition(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) ([]notification.Notification, error) {
		next, err := Next(ActionComplete, a.Status, in.Role, true)
		if err != nil {
			return nil, err
		}
		paid, err := r.Payments.TotalPaid(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		if paid.LessThan(a.TotalAmount) {
			return nil, fmt.Errorf("%w: outstanding balance of %s remains", application.ErrValidation, a.TotalAmount.Sub(paid))
		}

		a.Status = next
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.Applications.Save(ctx, a); err != nil {
			return nil, err
		}
		return []notification.Notification{notificationFor(a, notification.TypeStatusChange,
			"Loan Status: Completed",
			"Your loan has been fully repaid. Thank you.")}, nil
	})
}

// ---- internals ----

// transition wraps the shared locking/commit/notify choreography around one
// gate's body. The body returns the notifications to persist and deliver.
func (u *Usecase) transition(ctx context.Context, applicationID string, body func(r uow.Repos, a *application.Application) ([]notification.Notification, error)) (*TransitionDTO, error) {
	if u.uow == nil {
		return nil, application.ErrInvalidTransition
	}
	var (
		dto     *TransitionDTO
		pending []notification.Notification
	)
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.Application) error {
		ns, err := body(r, a)
		if err != nil {
			return err
		}
		pending = ns
		if err := persistNotifications(ctx, r, pending); err != nil {
			return err
		}
		dto = transitionDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.deliver(ctx, pending)
	return dto, nil
}

// reject is the shared terminal branch of the officer and committee gates.
func (u *Usecase) reject(ctx context.Context, r uow.Repos, a *application.Application, next application.Status, now time.Time, msg string) ([]notification.Notification, error) {
	a.Status = next
	a.StatusUpdatedAt = now
	if err := r.Applications.Save(ctx, a); err != nil {
		return nil, err
	}
	return []notification.Notification{notificationFor(a, notification.TypeRejected,
		"Loan Application Rejected", msg)}, nil
}

// applyTerms recomputes the derived fields from
// (final_approved_amount, loan_type.interest_rate, period).
func applyTerms(a *application.Application) error {
	terms, err := fincalc.Compute(a.FinalApprovedAmount, a.LoanType.InterestRate, a.Period, a.LoanType.FlatMonthlyRate())
	if err != nil {
		return fmt.Errorf("%w: %v", application.ErrValidation, err)
	}
	a.TotalInterest = terms.Interest
	a.TotalAmount = terms.TotalAmount
	a.MonthlyRepayment = terms.MonthlyRepayment
	return nil
}

func validateAdjustment(a *application.Application, adjusted *decimal.Decimal) error {
	if adjusted == nil {
		return nil
	}
	if !adjusted.IsPositive() {
		return fmt.Errorf("%w: adjusted amount must be positive", application.ErrValidation)
	}
	if adjusted.GreaterThan(a.Amount) {
		return fmt.Errorf("%w: adjusted amount may not exceed the requested amount", application.ErrValidation)
	}
	return nil
}

// ensurePendingReview creates the next stage's pending review row unless one
// already exists, keeping "exactly one review row per (application, stage)".
func ensurePendingReview(ctx context.Context, r uow.Repos, appID uint64, stage review.Stage) error {
	_, err := r.Reviews.GetByApplicationAndStage(ctx, appID, stage)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.Reviews.Create(ctx, &review.StageReview{
		ApplicationID: appID,
		Stage:         stage,
		Decision:      review.DecisionPending,
	})
}

// completeReview fills in the stage's pending row, creating it first if the
// lazy creation was somehow skipped. Re-submission updates in place.
func completeReview(ctx context.Context, r uow.Repos, appID uint64, stage review.Stage, fill func(*review.StageReview)) error {
	rev, err := r.Reviews.GetByApplicationAndStage(ctx, appID, stage)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rev = &review.StageReview{ApplicationID: appID, Stage: stage}
	}
	fill(rev)
	if rev.ID == 0 {
		return r.Reviews.Create(ctx, rev)
	}
	return r.Reviews.Save(ctx, rev)
}

func persistNotifications(ctx context.Context, r uow.Repos, ns []notification.Notification) error {
	for i := range ns {
		if err := r.Notifications.Create(ctx, &ns[i]); err != nil {
			return err
		}
	}
	return nil
}

// deliver hands committed notifications to the external sink. Delivery
// failures are logged, never surfaced: the state change already committed.
func (u *Usecase) deliver(ctx context.Context, ns []notification.Notification) {
	if u.notifier == nil {
		return
	}
	for _, n := range ns {
		if err := u.notifier.Notify(ctx, n); err != nil {
			log.Printf("notify %s to %s failed: %v", n.Type, n.RecipientID, err)
		}
	}
}

func notificationFor(a *application.Application, t notification.Type, title, msg string) notification.Notification {
	return notification.Notification{
		RecipientID: a.ApplicantID,
		Type:        t,
		Title:       title,
		Message:     msg,
		RelatedID:   a.ID,
		RelatedType: "LoanApplication",
	}
}

func transitionDTO(a *application.Application) *TransitionDTO {
	return &TransitionDTO{
		ApplicationID:   a.ApplicationID,
		Status:          a.Status,
		StatusUpdatedAt: a.StatusUpdatedAt,
	}
}
