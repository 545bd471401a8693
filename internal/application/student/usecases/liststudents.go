package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/student"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type ListStudentsQuery struct {
	Principal authorization.Principal
}

type ListStudentsResult struct {
	Students []*student.Student
}

type ListStudentsUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewListStudentsUseCase(studentRepo student.Repository, logger logger.Interface) *ListStudentsUseCase {
	return &ListStudentsUseCase{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (uc *ListStudentsUseCase) Execute(ctx context.Context, query ListStudentsQuery) (*ListStudentsResult, error) {
	if !query.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	students, err := uc.studentRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list students", "error", err)
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &ListStudentsResult{Students: students}, nil
}
