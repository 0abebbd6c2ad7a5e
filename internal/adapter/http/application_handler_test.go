package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	appDomain "sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/guarantor"
	"sacco-loan-service/internal/domain/uow"
	"sacco-loan-service/internal/testutil/appmock"
	"sacco-loan-service/internal/testutil/guarantormock"
	"sacco-loan-service/internal/testutil/notifymock"
	"sacco-loan-service/internal/testutil/schedmock"
	"sacco-loan-service/internal/testutil/uowmock"
	uc "sacco-loan-service/internal/usecase/application"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func memberHeaders(req *stdhttp.Request, memberID string) {
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderMemberID, memberID)
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func maendeleo() *appDomain.LoanType {
	return &appDomain.LoanType{
		ID:           1,
		Name:         "maendeleo",
		MaxAmount:    mustDecimal("50000000"),
		InterestRate: mustDecimal("10"),
		MaxPeriod:    36,
		IsActive:     true,
	}
}

func newApplicationUsecase(apps *appmock.Repo, types *appmock.TypeRepo, guars *guarantormock.Repo) *uc.Usecase {
	tx := &uowmock.UoW{Repos: uow.Repos{
		Applications:  apps,
		LoanTypes:     types,
		Guarantors:    guars,
		Notifications: &notifymock.Repo{},
	}}
	return uc.NewUsecase(apps, types, guars, &schedmock.Repo{}, &schedmock.PaymentRepo{}, tx, &notifymock.Sink{})
}

// -------- tests --------

func TestSubmitApplication_Success(t *testing.T) {
	e := newEchoWithValidator()

	apps := &appmock.Repo{
		GetPendingByApplicantFn: func(_ context.Context, _ string) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, a *appDomain.Application) error {
			a.ID = 7
			a.CreatedAt = time.Now().UTC()
			return nil
		},
	}
	types := &appmock.TypeRepo{
		GetByIDFn: func(_ context.Context, _ uint64) (*appDomain.LoanType, error) {
			return maendeleo(), nil
		},
	}
	h := NewApplicationHandler(newApplicationUsecase(apps, types, &guarantormock.Repo{}))

	body := map[string]any{
		"loan_type_id":         1,
		"purpose":              "maendeleo",
		"amount":               1000000,
		"period":               1,
		"guarantor_ids":        []string{strings.Repeat("b", 32), strings.Repeat("c", 32)},
		"borrower_declaration": true,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(body))
	memberHeaders(req, strings.Repeat("a", 32))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("SubmitApplication error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got uc.ApplicationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.ApplicantID != strings.Repeat("a", 32) || got.Status != string(appDomain.StatusPending) {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if !got.TotalAmount.Equal(mustDecimal("1008333.33")) {
		t.Fatalf("TotalAmount = %s", got.TotalAmount)
	}
}

func TestSubmitApplication_MissingMemberHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := NewApplicationHandler(newApplicationUsecase(&appmock.Repo{}, &appmock.TypeRepo{}, &guarantormock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(map[string]any{}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.SubmitApplication(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitApplication_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := NewApplicationHandler(newApplicationUsecase(&appmock.Repo{}, &appmock.TypeRepo{}, &guarantormock.Repo{}))

	body := map[string]any{
		"loan_type_id":  1,
		"purpose":       "maendeleo",
		"amount":        100.123, // 3 decimal places
		"period":        1,
		"guarantor_ids": []string{"not-hex"},
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(body))
	memberHeaders(req, strings.Repeat("a", 32))
	rec := httptest.NewRecorder()

	if err := h.SubmitApplication(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(resp.Details, "Amount", "decimal") {
		t.Fatalf("missing amount error: %+v", resp.Details)
	}
}

func TestSubmitApplication_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewApplicationHandler(newApplicationUsecase(&appmock.Repo{}, &appmock.TypeRepo{}, &guarantormock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", strings.NewReader(`{"loan_type_id":`))
	memberHeaders(req, strings.Repeat("a", 32))
	rec := httptest.NewRecorder()

	if err := h.SubmitApplication(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetApplication_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := NewApplicationHandler(newApplicationUsecase(&appmock.Repo{}, &appmock.TypeRepo{}, &guarantormock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/unknown", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")

	if err := h.GetApplication(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetApplication_Success(t *testing.T) {
	e := newEchoWithValidator()
	stored := &appDomain.Application{
		ApplicationID: strings.Repeat("1", 32),
		ApplicantID:   strings.Repeat("a", 32),
		LoanType:      *maendeleo(),
		Status:        appDomain.StatusDisbursed,
		Amount:        mustDecimal("1000000"),
	}
	apps := &appmock.Repo{
		GetByApplicationIDFn: func(_ context.Context, id string) (*appDomain.Application, error) {
			if id == stored.ApplicationID {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewApplicationHandler(newApplicationUsecase(apps, &appmock.TypeRepo{}, &guarantormock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+stored.ApplicationID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(stored.ApplicationID)

	if err := h.GetApplication(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got uc.ApplicationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(appDomain.StatusDisbursed) || got.Progress != 100 {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestGuarantorRequests_Success(t *testing.T) {
	e := newEchoWithValidator()
	gID := strings.Repeat("b", 32)
	apps := &appmock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*appDomain.Application, error) {
			return &appDomain.Application{ID: id, ApplicationID: strings.Repeat("2", 32)}, nil
		},
	}
	guars := &guarantormock.Repo{
		ListByGuarantorFn: func(_ context.Context, _ string) ([]guarantor.Approval, error) {
			return []guarantor.Approval{
				{ApplicationID: 1, GuarantorID: gID, Decision: guarantor.DecisionPending},
			}, nil
		},
	}
	h := NewApplicationHandler(newApplicationUsecase(apps, &appmock.TypeRepo{}, guars))

	req := httptest.NewRequest(stdhttp.MethodGet, "/guarantor/requests", nil)
	memberHeaders(req, gID)
	rec := httptest.NewRecorder()

	if err := h.GuarantorRequests(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got uc.GuarantorRequestsDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got.Pending) != 1 || len(got.Responded) != 0 {
		t.Fatalf("unexpected queue: %+v", got)
	}
}
