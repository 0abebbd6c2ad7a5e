package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "sacco-loan-service/internal/adapter/http"
	appmw "sacco-loan-service/internal/adapter/middleware"
	"sacco-loan-service/internal/adapter/notifier"
	"sacco-loan-service/internal/adapter/repository/mysql"
	"sacco-loan-service/internal/config"
	"sacco-loan-service/internal/domain/notification"
	"sacco-loan-service/internal/infrastructure/cache"
	"sacco-loan-service/internal/infrastructure/db"
	applicationUC "sacco-loan-service/internal/usecase/application"
	workflowUC "sacco-loan-service/internal/usecase/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories + unit of work
	apps := mysql.NewApplicationRepository(gdb)
	types := mysql.NewLoanTypeRepository(gdb)
	guarantors := mysql.NewGuarantorRepository(gdb)
	installments := mysql.NewScheduleRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	var sink notification.Notifier = notifier.LogNotifier{}
	if cfg.SMTPHost != "" {
		sink = notifier.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom,
			notifier.DomainAddressBook{Domain: cfg.MemberMailDomain})
	}

	appUC := applicationUC.NewUsecase(apps, types, guarantors, installments, payments, guow, sink)
	wfUC := workflowUC.NewUsecase(guow, sink)

	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(appUC)
	wfH := httpadp.NewWorkflowHandler(wfUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	loans := e.Group("/loans", appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	loans.POST("", appH.SubmitApplication)
	loans.GET("", appH.MyApplications)
	loans.GET("/:loan_id", appH.GetApplication)
	loans.GET("/:loan_id/schedule", appH.GetSchedule)
	loans.GET("/:loan_id/payments", appH.PaymentHistory)
	loans.POST("/:loan_id/guarantor-response", wfH.GuarantorResponse)
	loans.POST("/:loan_id/hr-review", wfH.HRReview)
	loans.POST("/:loan_id/officer-decision", wfH.OfficerDecision)
	loans.POST("/:loan_id/committee-decision", wfH.CommitteeDecision)
	loans.POST("/:loan_id/processing", wfH.AccountantProcessing)
	loans.POST("/:loan_id/disburse", wfH.Disburse)
	loans.POST("/:loan_id/complete", wfH.Complete)
	loans.POST("/:loan_id/payments", wfH.RecordPayment)

	e.GET("/guarantor/requests", appH.GuarantorRequests)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
