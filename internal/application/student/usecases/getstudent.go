package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/student"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type GetStudentQuery struct {
	Principal authorization.Principal
	StudentID uint
}

type GetStudentResult struct {
	Student *student.Student
}

type GetStudentUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewGetStudentUseCase(studentRepo student.Repository, logger logger.Interface) *GetStudentUseCase {
	return &GetStudentUseCase{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (uc *GetStudentUseCase) Execute(ctx context.Context, query GetStudentQuery) (*GetStudentResult, error) {
	if !query.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	record, err := uc.studentRepo.GetByID(ctx, query.StudentID)
	if err != nil {
		uc.logger.Errorw("failed to get student", "student_id", query.StudentID, "error", err)
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError("student not found")
	}

	return &GetStudentResult{Student: record}, nil
}
