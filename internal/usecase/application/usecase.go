package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	domain "sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/guarantor"
	"sacco-loan-service/internal/domain/notification"
	"sacco-loan-service/internal/domain/schedule"
	"sacco-loan-service/internal/domain/uow"
	"sacco-loan-service/pkg/fincalc"
	"sacco-loan-service/pkg/id"
)

type Usecase struct {
	apps         domain.Repository
	types        domain.LoanTypeRepository
	guarantors   guarantor.Repository
	installments schedule.Repository
	payments     schedule.PaymentRepository
	uow          uow.UnitOfWork
	notifier     notification.Notifier
}

func NewUsecase(apps domain.Repository, types domain.LoanTypeRepository, guarantors guarantor.Repository,
	installments schedule.Repository, payments schedule.PaymentRepository,
	tx uow.UnitOfWork, n notification.Notifier) *Usecase {
	return &Usecase{
		apps:         apps,
		types:        types,
		guarantors:   guarantors,
		installments: installments,
		payments:     payments,
		uow:          tx,
		notifier:     n,
	}
}

// Submit creates a pending application plus one guarantor slot per nominated
// guarantor, with the derived financial fields computed up front.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if err := u.validateSubmit(ctx, &in); err != nil {
		return nil, err
	}

	lt, err := u.types.GetByID(ctx, in.LoanTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown loan type", domain.ErrValidation)
		}
		return nil, err
	}
	if !lt.IsActive {
		return nil, fmt.Errorf("%w: loan type %s is not active", domain.ErrValidation, lt.Name)
	}
	if in.Amount.GreaterThan(lt.MaxAmount) {
		return nil, fmt.Errorf("%w: amount exceeds %s maximum of %s", domain.ErrValidation, lt.Name, lt.MaxAmount)
	}
	if in.Period > lt.MaxPeriod {
		return nil, fmt.Errorf("%w: period exceeds %s maximum of %d months", domain.ErrValidation, lt.Name, lt.MaxPeriod)
	}

	// Block while an earlier application is still awaiting guarantors.
	pending, err := u.apps.GetPendingByApplicant(ctx, in.ApplicantID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: applicant already has a pending application: %s", domain.ErrValidation, pending.ApplicationID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	terms, err := fincalc.Compute(in.Amount, lt.InterestRate, in.Period, lt.FlatMonthlyRate())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	a := &domain.Application{
		ApplicationID:          id.NewID32(),
		ApplicantID:            in.ApplicantID,
		LoanTypeID:             lt.ID,
		LoanType:               *lt,
		Purpose:                in.Purpose,
		Amount:                 in.Amount,
		Period:                 in.Period,
		Status:                 domain.StatusPending,
		PhoneNumber:            in.PhoneNumber,
		Department:             in.Department,
		BankName:               in.BankName,
		AccountNumber:          in.AccountNumber,
		BorrowerDeclaration:    in.BorrowerDeclaration,
		SavingsValue:           in.SavingsValue,
		SharesValue:            in.SharesValue,
		Collateral1Description: in.Collateral1Description,
		Collateral1Value:       nullDecimalPtr(in.Collateral1Value),
		Collateral2Description: in.Collateral2Description,
		Collateral2Value:       nullDecimalPtr(in.Collateral2Value),
		MonthlyRepayment:       terms.MonthlyRepayment,
		TotalInterest:          terms.Interest,
		TotalAmount:            terms.TotalAmount,
		FinalApprovedAmount:    in.Amount,
		StatusUpdatedAt:        time.Now().UTC(),
	}

	var requests []notification.Notification
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		slots := make([]guarantor.Approval, 0, len(in.GuarantorIDs))
		for _, gID := range in.GuarantorIDs {
			slots = append(slots, guarantor.Approval{
				ApplicationID: a.ID,
				GuarantorID:   gID,
				Decision:      guarantor.DecisionPending,
			})
		}
		if err := r.Guarantors.CreateBatch(ctx, slots); err != nil {
			return err
		}
		for _, gID := range in.GuarantorIDs {
			n := notification.Notification{
				RecipientID: gID,
				Type:        notification.TypeGuarantorRequest,
				Title:       "Guarantor Request",
				Message:     "You have been nominated as a guarantor on a loan application. Please respond.",
				RelatedID:   a.ID,
				RelatedType: "LoanApplication",
			}
			if err := r.Notifications.Create(ctx, &n); err != nil {
				return err
			}
			requests = append(requests, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		for _, n := range requests {
			if err := u.notifier.Notify(ctx, n); err != nil {
				log.Printf("notify %s to %s failed: %v", n.Type, n.RecipientID, err)
			}
		}
	}
	return toDTO(a), nil
}

func (u *Usecase) validateSubmit(ctx context.Context, in *SubmitInput) error {
	if len(in.ApplicantID) != 32 {
		return fmt.Errorf("%w: malformed applicant id", domain.ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if in.Period <= 0 {
		return fmt.Errorf("%w: period must be at least one month", domain.ErrValidation)
	}
	if !in.BorrowerDeclaration {
		return fmt.Errorf("%w: borrower declaration must be accepted", domain.ErrValidation)
	}
	// An application with no guarantors would trivially satisfy consensus;
	// require at least one.
	if len(in.GuarantorIDs) == 0 {
		return fmt.Errorf("%w: at least one guarantor is required", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(in.GuarantorIDs))
	for _, g := range in.GuarantorIDs {
		if len(g) != 32 {
			return fmt.Errorf("%w: malformed guarantor id", domain.ErrValidation)
		}
		if g == in.ApplicantID {
			return fmt.Errorf("%w: applicant may not guarantee their own loan", domain.ErrValidation)
		}
		if seen[g] {
			return fmt.Errorf("%w: duplicate guarantor", domain.ErrValidation)
		}
		seen[g] = true
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) ListByApplicant(ctx context.Context, applicantID string) ([]ApplicationDTO, error) {
	apps, err := u.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}

func (u *Usecase) GetSchedule(ctx context.Context, applicationID string) ([]schedule.Installment, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u.installments.ListByApplication(ctx, a.ID)
}

func (u *Usecase) PaymentHistory(ctx context.Context, applicationID string) ([]schedule.Payment, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u.payments.ListByApplication(ctx, a.ID)
}

// GuarantorRequests splits a guarantor's nominations into the ones still
// waiting on them and the ones they have answered.
func (u *Usecase) GuarantorRequests(ctx context.Context, guarantorID string) (*GuarantorRequestsDTO, error) {
	slots, err := u.guarantors.ListByGuarantor(ctx, guarantorID)
	if err != nil {
		return nil, err
	}
	out := &GuarantorRequestsDTO{
		Pending:   []GuarantorRequestDTO{},
		Responded: []GuarantorRequestDTO{},
	}
	for _, s := range slots {
		a, err := u.apps.GetByID(ctx, s.ApplicationID)
		if err != nil {
			return nil, err
		}
		req := GuarantorRequestDTO{
			ApplicationID: a.ApplicationID,
			Status:        s.Decision,
			RespondedAt:   s.RespondedAt,
		}
		if s.Responded() {
			out.Responded = append(out.Responded, req)
		} else {
			out.Pending = append(out.Pending, req)
		}
	}
	return out, nil
}
