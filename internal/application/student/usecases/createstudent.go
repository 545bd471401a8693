package usecases

import (
	"context"

	"libris/internal/domain/student"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type CreateStudentCommand struct {
	Principal   authorization.Principal
	StudentName string
	Block       string
	YearLevel   string
	Email       string
	Phone       string
}

type CreateStudentResult struct {
	Student *student.Student
}

type CreateStudentUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewCreateStudentUseCase(studentRepo student.Repository, logger logger.Interface) *CreateStudentUseCase {
	return &CreateStudentUseCase{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (uc *CreateStudentUseCase) Execute(ctx context.Context, cmd CreateStudentCommand) (*CreateStudentResult, error) {
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	record, err := student.NewStudent(cmd.StudentName, cmd.Block, cmd.YearLevel, cmd.Email, cmd.Phone)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.studentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	uc.logger.Infow("student created", "student_id", record.ID())

	return &CreateStudentResult{Student: record}, nil
}
