package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"libris/internal/domain/student"
	"libris/internal/infrastructure/persistence/mappers"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/shared/db"
	apperrors "libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

// StudentRepositoryImpl implements the student.Repository interface.
type StudentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.StudentMapper
	logger logger.Interface
}

// NewStudentRepository creates a new student repository instance.
func NewStudentRepository(database *gorm.DB, logger logger.Interface) student.Repository {
	return &StudentRepositoryImpl{
		db:     database,
		mapper: mappers.NewStudentMapper(),
		logger: logger,
	}
}

// Create creates a new student record.
func (r *StudentRepositoryImpl) Create(ctx context.Context, entity *student.Student) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map student entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("a student with this email already exists")
		}
		r.logger.Errorw("failed to create student in database", "error", err)
		return fmt.Errorf("failed to create student: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set student ID: %w", err)
	}

	r.logger.Infow("student created", "id", model.ID)
	return nil
}

// Update updates an existing student record.
func (r *StudentRepositoryImpl) Update(ctx context.Context, entity *student.Student) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map student entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.StudentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"student_name": model.StudentName,
			"block":        model.Block,
			"year_level":   model.YearLevel,
			"email":        model.Email,
			"phone":        model.Phone,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("a student with this email already exists")
		}
		r.logger.Errorw("failed to update student", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update student: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("student not found", fmt.Sprintf("student ID %d", model.ID))
	}

	return nil
}

// Delete removes a student record by ID.
func (r *StudentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.StudentModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete student", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("student not found", fmt.Sprintf("student ID %d", id))
	}

	r.logger.Infow("student deleted", "id", id)
	return nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepositoryImpl) GetByID(ctx context.Context, id uint) (*student.Student, error) {
	var model models.StudentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get student by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List retrieves all students ordered by name.
func (r *StudentRepositoryImpl) List(ctx context.Context) ([]*student.Student, error) {
	var modelList []*models.StudentModel
	if err := db.GetTxFromContext(ctx, r.db).Order("student_name ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list students", "error", err)
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}
