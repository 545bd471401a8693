package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/student"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type UpdateStudentCommand struct {
	Principal   authorization.Principal
	StudentID   uint
	StudentName string
	Block       string
	YearLevel   string
	Email       string
	Phone       string
}

type UpdateStudentResult struct {
	Student *student.Student
}

type UpdateStudentUseCase struct {
	studentRepo student.Repository
	logger      logger.Interface
}

func NewUpdateStudentUseCase(studentRepo student.Repository, logger logger.Interface) *UpdateStudentUseCase {
	return &UpdateStudentUseCase{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (uc *UpdateStudentUseCase) Execute(ctx context.Context, cmd UpdateStudentCommand) (*UpdateStudentResult, error) {
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	record, err := uc.studentRepo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		uc.logger.Errorw("failed to get student", "student_id", cmd.StudentID, "error", err)
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError("student not found")
	}

	if err := record.Update(cmd.StudentName, cmd.Block, cmd.YearLevel, cmd.Email, cmd.Phone); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.studentRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	uc.logger.Infow("student updated", "student_id", record.ID())

	return &UpdateStudentResult{Student: record}, nil
}
