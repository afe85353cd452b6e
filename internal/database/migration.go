package database

import (
	"fmt"

	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Account{},
		&models.CreditCard{},
		&models.Entry{},
		&models.RecurringEntry{},
		&models.RecurringStatus{},
		&models.Transaction{},
		&models.Opportunity{},
		&models.Goal{},
		&models.PatrimonyItem{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
