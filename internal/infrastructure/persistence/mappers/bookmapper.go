package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"libris/internal/domain/book"
	"libris/internal/infrastructure/persistence/models"
)

// BookMapper handles the conversion between domain entities and persistence models.
type BookMapper interface {
	// ToEntity converts a persistence model to a domain entity.
	ToEntity(model *models.BookModel) (*book.Book, error)

	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *book.Book) (*models.BookModel, error)

	// ToEntities converts multiple persistence models to domain entities.
	ToEntities(models []*models.BookModel) ([]*book.Book, error)
}

// BookMapperImpl is the concrete implementation of BookMapper.
type BookMapperImpl struct{}

// NewBookMapper creates a new book mapper.
func NewBookMapper() BookMapper {
	return &BookMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *BookMapperImpl) ToEntity(model *models.BookModel) (*book.Book, error) {
	if model == nil {
		return nil, nil
	}

	var tags []string
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to decode book tags: %w", err)
		}
	}

	entity, err := book.ReconstructBook(
		model.ID,
		model.Title,
		model.Author,
		model.Publisher,
		model.ISBN,
		model.Description,
		tags,
		model.TotalCopies,
		model.AvailableCopies,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct book entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *BookMapperImpl) ToModel(entity *book.Book) (*models.BookModel, error) {
	if entity == nil {
		return nil, nil
	}

	var tags datatypes.JSON
	if len(entity.Tags()) > 0 {
		encoded, err := json.Marshal(entity.Tags())
		if err != nil {
			return nil, fmt.Errorf("failed to encode book tags: %w", err)
		}
		tags = datatypes.JSON(encoded)
	}

	return &models.BookModel{
		ID:              entity.ID(),
		Title:           entity.Title(),
		Author:          entity.Author(),
		Publisher:       entity.Publisher(),
		ISBN:            entity.ISBN(),
		Description:     entity.Description(),
		Tags:            tags,
		TotalCopies:     entity.TotalCopies(),
		AvailableCopies: entity.AvailableCopies(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities.
func (m *BookMapperImpl) ToEntities(modelList []*models.BookModel) ([]*book.Book, error) {
	entities := make([]*book.Book, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map book %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
