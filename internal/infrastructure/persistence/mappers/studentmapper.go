package mappers

import (
	"fmt"

	"libris/internal/domain/student"
	"libris/internal/infrastructure/persistence/models"
)

// StudentMapper handles the conversion between domain entities and persistence models.
type StudentMapper interface {
	ToEntity(model *models.StudentModel) (*student.Student, error)
	ToModel(entity *student.Student) (*models.StudentModel, error)
	ToEntities(models []*models.StudentModel) ([]*student.Student, error)
}

// StudentMapperImpl is the concrete implementation of StudentMapper.
type StudentMapperImpl struct{}

// NewStudentMapper creates a new student mapper.
func NewStudentMapper() StudentMapper {
	return &StudentMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *StudentMapperImpl) ToEntity(model *models.StudentModel) (*student.Student, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := student.ReconstructStudent(
		model.ID,
		model.StudentName,
		model.Block,
		model.YearLevel,
		model.Email,
		model.Phone,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct student entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *StudentMapperImpl) ToModel(entity *student.Student) (*models.StudentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.StudentModel{
		ID:          entity.ID(),
		StudentName: entity.StudentName(),
		Block:       entity.Block(),
		YearLevel:   entity.YearLevel(),
		Email:       entity.Email(),
		Phone:       entity.Phone(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities.
func (m *StudentMapperImpl) ToEntities(modelList []*models.StudentModel) ([]*student.Student, error) {
	entities := make([]*student.Student, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map student %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
