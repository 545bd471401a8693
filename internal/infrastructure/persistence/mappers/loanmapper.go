package mappers

import (
	"fmt"

	"libris/internal/domain/loan"
	"libris/internal/infrastructure/persistence/models"
)

// LoanMapper handles the conversion between domain entities and persistence models.
type LoanMapper interface {
	// ToEntity converts a persistence model to a domain entity.
	ToEntity(model *models.LoanModel) (*loan.Loan, error)

	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *loan.Loan) (*models.LoanModel, error)

	// ToEntities converts multiple persistence models to domain entities.
	ToEntities(models []*models.LoanModel) ([]*loan.Loan, error)
}

// LoanMapperImpl is the concrete implementation of LoanMapper.
type LoanMapperImpl struct{}

// NewLoanMapper creates a new loan mapper.
func NewLoanMapper() LoanMapper {
	return &LoanMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *LoanMapperImpl) ToEntity(model *models.LoanModel) (*loan.Loan, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := loan.ReconstructLoan(
		model.ID,
		model.UserID,
		model.BookID,
		model.BorrowedAt,
		model.DueDate,
		model.ReturnedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct loan entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *LoanMapperImpl) ToModel(entity *loan.Loan) (*models.LoanModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.LoanModel{
		ID:         entity.ID(),
		UserID:     entity.UserID(),
		BookID:     entity.BookID(),
		BorrowedAt: entity.BorrowedAt(),
		DueDate:    entity.DueDate(),
		ReturnedAt: entity.ReturnedAt(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities.
func (m *LoanMapperImpl) ToEntities(modelList []*models.LoanModel) ([]*loan.Loan, error) {
	entities := make([]*loan.Loan, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map loan %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
