package usecases

import (
	"context"

	"libris/internal/domain/student"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type DeleteStudentCommand struct {
	Principal authorization.Principal
	StudentID uint
}

type DeleteStudentUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewDeleteStudentUseCase(studentRepo student.Repository, logger logger.Interface) *DeleteStudentUseCase {
	return &DeleteStudentUseCase{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (uc *DeleteStudentUseCase) Execute(ctx context.Context, cmd DeleteStudentCommand) error {
	if !cmd.Principal.IsAdmin() {
		return errors.NewForbiddenError("admin access required")
	}

	if err := uc.studentRepo.Delete(ctx, cmd.StudentID); err != nil {
		return err
	}

	uc.logger.Infow("student deleted", "student_id", cmd.StudentID)
	return nil
}
