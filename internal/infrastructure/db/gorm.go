package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sacco-loan-service/internal/domain/application"
	"sacco-loan-service/internal/domain/guarantor"
	"sacco-loan-service/internal/domain/notification"
	"sacco-loan-service/internal/domain/review"
	"sacco-loan-service/internal/domain/schedule"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(mysql.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate keeps the schema in step with the domain entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&application.LoanType{},
		&application.Application{},
		&guarantor.Approval{},
		&review.StageReview{},
		&schedule.Installment{},
		&schedule.Payment{},
		&notification.Notification{},
	)
}
