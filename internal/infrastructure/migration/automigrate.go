package migration

import (
	"libris/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.BookModel{},
		&models.LoanModel{},
		&models.StudentModel{},
	}
}
