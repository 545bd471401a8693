package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"libris/internal/domain/loan"
	"libris/internal/infrastructure/persistence/mappers"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/shared/db"
	"libris/internal/shared/logger"
)

// LoanRepositoryImpl implements the loan.Repository interface.
type LoanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LoanMapper
	logger logger.Interface
}

// NewLoanRepository creates a new loan repository instance.
func NewLoanRepository(database *gorm.DB, logger logger.Interface) loan.Repository {
	return &LoanRepositoryImpl{
		db:     database,
		mapper: mappers.NewLoanMapper(),
		logger: logger,
	}
}

// Create appends a new loan row.
func (r *LoanRepositoryImpl) Create(ctx context.Context, entity *loan.Loan) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map loan entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create loan in database", "error", err)
		return fmt.Errorf("failed to create loan: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set loan ID: %w", err)
	}

	return nil
}

// CreateBatch appends several loan rows in one statement.
func (r *LoanRepositoryImpl) CreateBatch(ctx context.Context, entities []*loan.Loan) error {
	if len(entities) == 0 {
		return nil
	}

	modelList := make([]*models.LoanModel, 0, len(entities))
	for _, entity := range entities {
		model, err := r.mapper.ToModel(entity)
		if err != nil {
			return fmt.Errorf("failed to map loan entity: %w", err)
		}
		modelList = append(modelList, model)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(&modelList).Error; err != nil {
		r.logger.Errorw("failed to create loans in database", "count", len(modelList), "error", err)
		return fmt.Errorf("failed to create loans: %w", err)
	}

	for i, entity := range entities {
		if err := entity.SetID(modelList[i].ID); err != nil {
			return fmt.Errorf("failed to set loan ID: %w", err)
		}
	}

	return nil
}

// Update persists a loan mutation (setting the return date).
func (r *LoanRepositoryImpl) Update(ctx context.Context, entity *loan.Loan) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map loan entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.LoanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"date_return": model.ReturnedAt,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update loan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update loan: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return loan.NewNotFoundError(model.ID)
	}

	return nil
}

// Delete removes a loan row by ID.
func (r *LoanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.LoanModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete loan", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return loan.NewNotFoundError(id)
	}

	r.logger.Infow("loan deleted", "id", id)
	return nil
}

// GetByID retrieves a loan by its ID.
func (r *LoanRepositoryImpl) GetByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model models.LoanModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get loan by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetActiveByUserAndBook retrieves the caller's oldest active loan for a book.
func (r *LoanRepositoryImpl) GetActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*loan.Loan, error) {
	var model models.LoanModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND book_id = ? AND date_return IS NULL", userID, bookID).
		Order("date_borrowed ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get active loan", "user_id", userID, "book_id", bookID, "error", err)
		return nil, fmt.Errorf("failed to get active loan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// CountActiveByBook counts active loans for a book.
func (r *LoanRepositoryImpl) CountActiveByBook(ctx context.Context, bookID uint) (int, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.LoanModel{}).
		Where("book_id = ? AND date_return IS NULL", bookID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}
	return int(count), nil
}

// CountActiveByUserAndBook counts the caller's active loans for a book.
func (r *LoanRepositoryImpl) CountActiveByUserAndBook(ctx context.Context, userID, bookID uint) (int, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.LoanModel{}).
		Where("user_id = ? AND book_id = ? AND date_return IS NULL", userID, bookID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}
	return int(count), nil
}

// CountActive counts all active loans.
func (r *LoanRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.LoanModel{}).
		Where("date_return IS NULL").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}
	return count, nil
}

// ListActiveByUser retrieves the caller's active loans, oldest first.
func (r *LoanRepositoryImpl) ListActiveByUser(ctx context.Context, userID uint) ([]*loan.Loan, error) {
	var modelList []*models.LoanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND date_return IS NULL", userID).
		Order("date_borrowed ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list active loans for user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// ListActive retrieves every active loan, oldest first.
func (r *LoanRepositoryImpl) ListActive(ctx context.Context) ([]*loan.Loan, error) {
	var modelList []*models.LoanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("date_return IS NULL").
		Order("date_borrowed ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list active loans", "error", err)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// ListOverdue retrieves active loans whose due date passed before now.
func (r *LoanRepositoryImpl) ListOverdue(ctx context.Context, now time.Time) ([]*loan.Loan, error) {
	var modelList []*models.LoanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("date_return IS NULL AND due_date < ?", now).
		Order("due_date ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list overdue loans", "error", err)
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// List retrieves a paginated slice of the ledger, newest first.
func (r *LoanRepositoryImpl) List(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.LoanModel{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.BookID != 0 {
		query = query.Where("book_id = ?", filter.BookID)
	}
	if filter.ActiveOnly {
		query = query.Where("date_return IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var modelList []*models.LoanModel
	if err := query.Order("date_borrowed DESC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list loans", "error", err)
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// DeleteByBook removes every loan row for a book. Used by the hard-delete
// catalog path to cascade history inside the same transaction.
func (r *LoanRepositoryImpl) DeleteByBook(ctx context.Context, bookID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("book_id = ?", bookID).
		Delete(&models.LoanModel{}).Error; err != nil {
		r.logger.Errorw("failed to cascade delete loans", "book_id", bookID, "error", err)
		return fmt.Errorf("failed to delete loans for book: %w", err)
	}
	return nil
}
