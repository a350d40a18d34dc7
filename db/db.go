package db

import (
	"log"
	"os"
	"time"

	"github.com/Kogaraashi-py/Foreign-Library/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(databaseURL string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 newLogger,
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the catalog tables. Deleting a Novel must also
// remove its NovelName, NovelGenre and Chapter rows; that cascade is done
// explicitly in one transaction by the caller, not left to the driver.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Novel{},
		&models.NovelName{},
		&models.Genre{},
		&models.NovelGenre{},
		&models.Chapter{},
	)
}
