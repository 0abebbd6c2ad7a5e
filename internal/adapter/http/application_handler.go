package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	uc "sacco-loan-service/internal/usecase/application"
)

type ApplicationHandler struct{ uc *uc.Usecase }

func NewApplicationHandler(u *uc.Usecase) *ApplicationHandler { return &ApplicationHandler{uc: u} }

type submitApplicationReq struct {
	LoanTypeID   uint64   `json:"loan_type_id"  validate:"required"`
	Purpose      string   `json:"purpose"       validate:"required"`
	Amount       float64  `json:"amount"        validate:"required,gt=0,dec2"`
	Period       int      `json:"period"        validate:"required,gte=1"`
	GuarantorIDs []string `json:"guarantor_ids" validate:"required,min=1,dive,hex32"`

	PhoneNumber   string `json:"phone_number"`
	Department    string `json:"department"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`

	BorrowerDeclaration    bool     `json:"borrower_declaration"`
	SavingsValue           float64  `json:"savings_value"  validate:"gte=0,dec2"`
	SharesValue            float64  `json:"shares_value"   validate:"gte=0,dec2"`
	Collateral1Description string   `json:"collateral1_description"`
	Collateral1Value       *float64 `json:"collateral1_value" validate:"omitempty,gt=0,dec2"`
	Collateral2Description string   `json:"collateral2_description"`
	Collateral2Value       *float64 `json:"collateral2_value" validate:"omitempty,gt=0,dec2"`
}

func (h *ApplicationHandler) SubmitApplication(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := uc.SubmitInput{
		ApplicantID:            act.ID,
		LoanTypeID:             req.LoanTypeID,
		Purpose:                req.Purpose,
		Amount:                 money(req.Amount),
		Period:                 req.Period,
		GuarantorIDs:           req.GuarantorIDs,
		PhoneNumber:            req.PhoneNumber,
		Department:             req.Department,
		BankName:               req.BankName,
		AccountNumber:          req.AccountNumber,
		BorrowerDeclaration:    req.BorrowerDeclaration,
		SavingsValue:           money(req.SavingsValue),
		SharesValue:            money(req.SharesValue),
		Collateral1Description: req.Collateral1Description,
		Collateral1Value:       moneyPtr(req.Collateral1Value),
		Collateral2Description: req.Collateral2Description,
		Collateral2Value:       moneyPtr(req.Collateral2Value),
	}
	dto, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) MyApplications(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	out, err := h.uc.ListByApplicant(c.Request().Context(), act.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) GetSchedule(c echo.Context) error {
	out, err := h.uc.GetSchedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) PaymentHistory(c echo.Context) error {
	out, err := h.uc.PaymentHistory(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) GuarantorRequests(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderMemberID})
	}
	out, err := h.uc.GuarantorRequests(c.Request().Context(), act.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// money converts a validated 2-dp JSON number into exact decimal.
func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func moneyPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := money(*f)
	return &d
}
