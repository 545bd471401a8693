package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"libris/internal/domain/book"
	"libris/internal/infrastructure/persistence/mappers"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/shared/db"
	apperrors "libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

// BookRepositoryImpl implements the book.Repository interface.
// All queries resolve the database handle through the transaction context so
// that borrow/return/repair compose into one atomic unit.
type BookRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BookMapper
	logger logger.Interface
}

// NewBookRepository creates a new book repository instance.
func NewBookRepository(database *gorm.DB, logger logger.Interface) book.Repository {
	return &BookRepositoryImpl{
		db:     database,
		mapper: mappers.NewBookMapper(),
		logger: logger,
	}
}

// Create creates a new book in the database.
func (r *BookRepositoryImpl) Create(ctx context.Context, entity *book.Book) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map book entity to model", "error", err)
		return fmt.Errorf("failed to map book entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("book already exists")
		}
		r.logger.Errorw("failed to create book in database", "error", err)
		return fmt.Errorf("failed to create book: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set book ID: %w", err)
	}

	r.logger.Infow("book created", "id", model.ID, "title", model.Title, "total_copies", model.TotalCopies)
	return nil
}

// Update updates an existing book including its copy counters.
func (r *BookRepositoryImpl) Update(ctx context.Context, entity *book.Book) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map book entity to model", "error", err)
		return fmt.Errorf("failed to map book entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.BookModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"title":            model.Title,
			"author":           model.Author,
			"publisher":        model.Publisher,
			"isbn":             model.ISBN,
			"description":      model.Description,
			"tags":             model.Tags,
			"total_copies":     model.TotalCopies,
			"available_copies": model.AvailableCopies,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update book", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update book: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return book.NewNotFoundError(model.ID)
	}

	return nil
}

// Delete soft deletes a book by ID, preserving its loan history.
func (r *BookRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.BookModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete book", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return book.NewNotFoundError(id)
	}

	r.logger.Infow("book soft deleted", "id", id)
	return nil
}

// HardDelete removes the book row entirely. Loan-history cascade is handled
// by the calling use case inside the same transaction.
func (r *BookRepositoryImpl) HardDelete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Unscoped().Delete(&models.BookModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to hard delete book", "id", id, "error", result.Error)
		return fmt.Errorf("failed to hard delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return book.NewNotFoundError(id)
	}

	r.logger.Infow("book hard deleted", "id", id)
	return nil
}

// GetByID retrieves a book by its ID.
func (r *BookRepositoryImpl) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	var model models.BookModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get book by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByIDForUpdate retrieves a book by ID holding a row-level write lock for
// the duration of the surrounding transaction.
func (r *BookRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*book.Book, error) {
	var model models.BookModel

	if err := db.LockForUpdate(db.GetTxFromContext(ctx, r.db)).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get book for update", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get book for update: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByIDs retrieves multiple books keyed by ID.
func (r *BookRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	if len(ids) == 0 {
		return map[uint]*book.Book{}, nil
	}

	var modelList []*models.BookModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get books by IDs", "error", err)
		return nil, fmt.Errorf("failed to get books: %w", err)
	}

	result := make(map[uint]*book.Book, len(modelList))
	for _, model := range modelList {
		entity, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		result[model.ID] = entity
	}
	return result, nil
}

// List retrieves all books ordered by title.
func (r *BookRepositoryImpl) List(ctx context.Context) ([]*book.Book, error) {
	var modelList []*models.BookModel
	if err := db.GetTxFromContext(ctx, r.db).Order("title ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list books", "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// ListAvailable retrieves books with at least one available copy.
func (r *BookRepositoryImpl) ListAvailable(ctx context.Context) ([]*book.Book, error) {
	var modelList []*models.BookModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("available_copies > 0").
		Order("title ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list available books", "error", err)
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// Count returns the number of books in the catalog.
func (r *BookRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.BookModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// CountAvailable returns the number of books with available copies.
func (r *BookRepositoryImpl) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.BookModel{}).
		Where("available_copies > 0").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count available books: %w", err)
	}
	return count, nil
}
