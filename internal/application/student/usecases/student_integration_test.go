package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"libris/internal/domain/student"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/infrastructure/repository"
	"libris/internal/shared/authorization"
	apperrors "libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type studentFixture struct {
	db          *gorm.DB
	studentRepo student.Repository

	create *CreateStudentUseCase
	update *UpdateStudentUseCase
	del    *DeleteStudentUseCase
	get    *GetStudentUseCase
	list   *ListStudentsUseCase
}

func setupStudents(t *testing.T) *studentFixture {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(&models.StudentModel{}))

	log := logger.NewLogger()
	studentRepo := repository.NewStudentRepository(database, log)

	return &studentFixture{
		db:          database,
		studentRepo: studentRepo,

		create: NewCreateStudentUseCase(studentRepo, log),
		update: NewUpdateStudentUseCase(studentRepo, log),
		del:    NewDeleteStudentUseCase(studentRepo, log),
		get:    NewGetStudentUseCase(studentRepo, log),
		list:   NewListStudentsUseCase(studentRepo, log),
	}
}

func admin() authorization.Principal {
	return authorization.Principal{UserID: 9, Role: authorization.RoleAdmin}
}

func member() authorization.Principal {
	return authorization.Principal{UserID: 1, Role: authorization.RoleUser}
}

func (f *studentFixture) createStudent(t *testing.T, name, email string) *student.Student {
	t.Helper()

	result, err := f.create.Execute(context.Background(), CreateStudentCommand{
		Principal:   admin(),
		StudentName: name,
		Block:       "B",
		YearLevel:   "2",
		Email:       email,
		Phone:       "555-0101",
	})
	require.NoError(t, err)
	return result.Student
}

func TestCreateStudent(t *testing.T) {
	t.Run("creates record with generated ID", func(t *testing.T) {
		f := setupStudents(t)

		result, err := f.create.Execute(context.Background(), CreateStudentCommand{
			Principal:   admin(),
			StudentName: "Mara Iles",
			Block:       "A",
			YearLevel:   "3",
			Email:       "mara@campus.test",
			Phone:       "555-0100",
		})
		require.NoError(t, err)
		assert.NotZero(t, result.Student.ID())
		assert.Equal(t, "Mara Iles", result.Student.StudentName())

		stored, err := f.studentRepo.GetByID(context.Background(), result.Student.ID())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "mara@campus.test", stored.Email())
		assert.Equal(t, "A", stored.Block())
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupStudents(t)

		_, err := f.create.Execute(context.Background(), CreateStudentCommand{
			Principal:   member(),
			StudentName: "Mara Iles",
			Email:       "mara@campus.test",
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		f := setupStudents(t)

		_, err := f.create.Execute(context.Background(), CreateStudentCommand{
			Principal: admin(),
			Email:     "noname@campus.test",
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		f := setupStudents(t)

		_, err := f.create.Execute(context.Background(), CreateStudentCommand{
			Principal:   admin(),
			StudentName: "Mara Iles",
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})
}

func TestUpdateStudent(t *testing.T) {
	t.Run("replaces record attributes", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		result, err := f.update.Execute(context.Background(), UpdateStudentCommand{
			Principal:   admin(),
			StudentID:   created.ID(),
			StudentName: "Mara Iles-Quon",
			Block:       "C",
			YearLevel:   "4",
			Email:       "mara.q@campus.test",
			Phone:       "555-0199",
		})
		require.NoError(t, err)
		assert.Equal(t, "Mara Iles-Quon", result.Student.StudentName())

		stored, err := f.studentRepo.GetByID(context.Background(), created.ID())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "C", stored.Block())
		assert.Equal(t, "4", stored.YearLevel())
		assert.Equal(t, "mara.q@campus.test", stored.Email())
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		_, err := f.update.Execute(context.Background(), UpdateStudentCommand{
			Principal:   member(),
			StudentID:   created.ID(),
			StudentName: "Mara Iles",
			Email:       "mara@campus.test",
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		f := setupStudents(t)

		_, err := f.update.Execute(context.Background(), UpdateStudentCommand{
			Principal:   admin(),
			StudentID:   404,
			StudentName: "Nobody",
			Email:       "nobody@campus.test",
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})

	t.Run("rejects emptied name", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		_, err := f.update.Execute(context.Background(), UpdateStudentCommand{
			Principal: admin(),
			StudentID: created.ID(),
			Email:     "mara@campus.test",
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})
}

func TestGetStudent(t *testing.T) {
	t.Run("returns stored record", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		result, err := f.get.Execute(context.Background(), GetStudentQuery{
			Principal: admin(),
			StudentID: created.ID(),
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID(), result.Student.ID())
		assert.Equal(t, "555-0101", result.Student.Phone())
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		_, err := f.get.Execute(context.Background(), GetStudentQuery{
			Principal: member(),
			StudentID: created.ID(),
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		f := setupStudents(t)

		_, err := f.get.Execute(context.Background(), GetStudentQuery{
			Principal: admin(),
			StudentID: 404,
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestDeleteStudent(t *testing.T) {
	t.Run("removes record", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		err := f.del.Execute(context.Background(), DeleteStudentCommand{
			Principal: admin(),
			StudentID: created.ID(),
		})
		require.NoError(t, err)

		stored, err := f.studentRepo.GetByID(context.Background(), created.ID())
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupStudents(t)
		created := f.createStudent(t, "Mara Iles", "mara@campus.test")

		err := f.del.Execute(context.Background(), DeleteStudentCommand{
			Principal: member(),
			StudentID: created.ID(),
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		f := setupStudents(t)

		err := f.del.Execute(context.Background(), DeleteStudentCommand{
			Principal: admin(),
			StudentID: 404,
		})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestListStudents(t *testing.T) {
	t.Run("returns all records", func(t *testing.T) {
		f := setupStudents(t)
		f.createStudent(t, "Mara Iles", "mara@campus.test")
		f.createStudent(t, "Tom Hale", "tom@campus.test")

		result, err := f.list.Execute(context.Background(), ListStudentsQuery{Principal: admin()})
		require.NoError(t, err)
		require.Len(t, result.Students, 2)
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupStudents(t)

		_, err := f.list.Execute(context.Background(), ListStudentsQuery{Principal: member()})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("returns empty slice with no records", func(t *testing.T) {
		f := setupStudents(t)

		result, err := f.list.Execute(context.Background(), ListStudentsQuery{Principal: admin()})
		require.NoError(t, err)
		assert.Empty(t, result.Students)
	})
}
