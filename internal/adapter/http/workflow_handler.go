package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	uc "sacco-loan-service/internal/usecase/workflow"
)

type WorkflowHandler struct{ uc *uc.Usecase }

func NewWorkflowHandler(u *uc.Usecase) *WorkflowHandler { return &WorkflowHandler{uc: u} }

// bindAndValidate writes the error response itself and reports whether the
// handler may proceed.
func (h *WorkflowHandler) bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
		return false
	}
	return true
}

type guarantorResponseReq struct {
	Approve     bool   `json:"approve"`
	Declaration bool   `json:"declaration"`
	Comments    string `json:"comments"`
}

func (h *WorkflowHandler) GuarantorResponse(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req guarantorResponseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.RespondAsGuarantor(c.Request().Context(), uc.GuarantorResponseInput{
		ApplicationID: c.Param("loan_id"),
		GuarantorID:   act.ID,
		Approve:       req.Approve,
		Declaration:   req.Declaration,
		Comments:      req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type hrReviewReq struct {
	MonthlySalary    float64 `json:"monthly_salary"  validate:"gte=0,dec2"`
	EmployerDebts    float64 `json:"employer_debts"  validate:"gte=0,dec2"`
	FinancialDebts   float64 `json:"financial_debts" validate:"gte=0,dec2"`
	DepartmentAdvice string  `json:"department_advice"`
	Comments         string  `json:"comments"`
}

func (h *WorkflowHandler) HRReview(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req hrReviewReq
	if !h.bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.SubmitHRReview(c.Request().Context(), uc.HRReviewInput{
		ApplicationID:    c.Param("loan_id"),
		ReviewerID:       act.ID,
		Role:             act.Role,
		MonthlySalary:    money(req.MonthlySalary),
		EmployerDebts:    money(req.EmployerDebts),
		FinancialDebts:   money(req.FinancialDebts),
		DepartmentAdvice: req.DepartmentAdvice,
		Comments:         req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type decisionReq struct {
	Approve        bool     `json:"approve"`
	AdjustedAmount *float64 `json:"adjusted_amount" validate:"omitempty,gt=0,dec2"`
	Comments       string   `json:"comments"`
}

func (h *WorkflowHandler) OfficerDecision(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req decisionReq
	if !h.bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.SubmitOfficerDecision(c.Request().Context(), uc.OfficerDecisionInput{
		ApplicationID:  c.Param("loan_id"),
		OfficerID:      act.ID,
		Role:           act.Role,
		Approve:        req.Approve,
		AdjustedAmount: moneyPtr(req.AdjustedAmount),
		Comments:       req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WorkflowHandler) CommitteeDecision(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req decisionReq
	if !h.bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.SubmitCommitteeDecision(c.Request().Context(), uc.CommitteeDecisionInput{
		ApplicationID: c.Param("loan_id"),
		MemberID:      act.ID,
		Role:          act.Role,
		Approve:       req.Approve,
		FinalAmount:   moneyPtr(req.AdjustedAmount),
		Comments:      req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type processingReq struct {
	PaymentMethod   string `json:"payment_method" validate:"required"`
	BankDetails     string `json:"bank_details"`
	ProcessingNotes string `json:"processing_notes"`
}

func (h *WorkflowHandler) AccountantProcessing(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req processingReq
	if !h.bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.SubmitAccountantProcessing(c.Request().Context(), uc.AccountantProcessingInput{
		ApplicationID:   c.Param("loan_id"),
		AccountantID:    act.ID,
		Role:            act.Role,
		PaymentMethod:   req.PaymentMethod,
		BankDetails:     req.BankDetails,
		ProcessingNotes: req.ProcessingNotes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WorkflowHandler) Disburse(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	dto, err := h.uc.Disburse(c.Request().Context(), uc.DisburseInput{
		ApplicationID: c.Param("loan_id"),
		AccountantID:  act.ID,
		Role:          act.Role,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WorkflowHandler) Complete(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	dto, err := h.uc.Complete(c.Request().Context(), uc.CompleteInput{
		ApplicationID: c.Param("loan_id"),
		AccountantID:  act.ID,
		Role:          act.Role,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type recordPaymentReq struct {
	Amount          float64 `json:"amount" validate:"required,gt=0,dec2"`
	PaymentMethod   string  `json:"payment_method"`
	ReferenceNumber string  `json:"reference_number"`
}

func (h *WorkflowHandler) RecordPayment(c echo.Context) error {
	if _, ok := actorFrom(c); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req recordPaymentReq
	if !h.bindAndValidate(c, &req) {
		return nil
	}
	err := h.uc.RecordPayment(c.Request().Context(), uc.RecordPaymentInput{
		ApplicationID:   c.Param("loan_id"),
		Amount:          money(req.Amount),
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "recorded"})
}
