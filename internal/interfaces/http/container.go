package http

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogUC "libris/internal/application/catalog/usecases"
	dashboardUC "libris/internal/application/dashboard/usecases"
	lendingUC "libris/internal/application/lending/usecases"
	studentUC "libris/internal/application/student/usecases"
	userUC "libris/internal/application/user/usecases"
	"libris/internal/infrastructure/auth"
	"libris/internal/infrastructure/config"
	"libris/internal/infrastructure/email"
	"libris/internal/infrastructure/repository"
	"libris/internal/interfaces/http/handlers"
	"libris/internal/interfaces/http/middleware"
	"libris/internal/shared/db"
	"libris/internal/shared/logger"
)

// emailService is what the use cases need from the mail layer. Both the
// SMTP implementation and the noop fallback satisfy it.
type emailService interface {
	SendOverdueNotice(to, userName, bookTitle string, dueDate time.Time) error
	SendWelcomeEmail(to, userName string) error
}

// Container wires repositories, use cases, and handlers together. It owns
// the redis client used for rate limiting and exposes the overdue-scan
// use case for the server command's background loop.
type Container struct {
	cfg *config.Config
	log logger.Interface

	bookHandler      *handlers.BookHandler
	lendingHandler   *handlers.LendingHandler
	loanHandler      *handlers.LoanHandler
	authHandler      *handlers.AuthHandler
	userHandler      *handlers.UserHandler
	studentHandler   *handlers.StudentHandler
	dashboardHandler *handlers.DashboardHandler

	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	redisClient    *redis.Client

	notifyOverdueUC *lendingUC.NotifyOverdueLoansUseCase
}

// NewContainer builds the full dependency graph on top of the given database.
func NewContainer(database *gorm.DB, cfg *config.Config) (*Container, error) {
	if database == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	log := logger.NewLogger()
	txManager := db.NewTransactionManager(database)

	bookRepo := repository.NewBookRepository(database, log.Named("repo.book"))
	loanRepo := repository.NewLoanRepository(database, log.Named("repo.loan"))
	userRepo := repository.NewUserRepository(database, log.Named("repo.user"))
	studentRepo := repository.NewStudentRepository(database, log.Named("repo.student"))

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	var mailer emailService
	if cfg.Email.Enabled {
		mailer = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
	} else {
		mailer = email.NewNoopEmailService()
	}

	// Lending
	borrowUC := lendingUC.NewBorrowBookUseCase(bookRepo, loanRepo, txManager,
		cfg.Lending.MaxLoanCopies, cfg.Lending.DefaultLoanDays, log.Named("uc.borrow"))
	returnUC := lendingUC.NewReturnBookUseCase(bookRepo, loanRepo, txManager, log.Named("uc.return"))
	listBorrowedUC := lendingUC.NewListBorrowedBooksUseCase(bookRepo, loanRepo, log.Named("uc.borrowed"))
	listAllBorrowedUC := lendingUC.NewListAllBorrowedBooksUseCase(bookRepo, loanRepo, userRepo, log.Named("uc.all_borrowed"))
	repairUC := lendingUC.NewRepairAvailabilityUseCase(bookRepo, loanRepo, txManager, log.Named("uc.repair"))
	listLoansUC := lendingUC.NewListLoansUseCase(bookRepo, loanRepo, userRepo, log.Named("uc.loans"))
	deleteLoanUC := lendingUC.NewDeleteLoanUseCase(bookRepo, loanRepo, txManager, log.Named("uc.delete_loan"))
	notifyOverdueUC := lendingUC.NewNotifyOverdueLoansUseCase(bookRepo, loanRepo, userRepo, mailer, log.Named("uc.overdue"))

	// Catalog
	createBookUC := catalogUC.NewCreateBookUseCase(bookRepo, log.Named("uc.create_book"))
	updateBookUC := catalogUC.NewUpdateBookUseCase(bookRepo, txManager, log.Named("uc.update_book"))
	deleteBookUC := catalogUC.NewDeleteBookUseCase(bookRepo, loanRepo, txManager,
		cfg.Lending.PreserveHistory, log.Named("uc.delete_book"))
	getBookUC := catalogUC.NewGetBookUseCase(bookRepo, log.Named("uc.get_book"))
	listBooksUC := catalogUC.NewListBooksUseCase(bookRepo, loanRepo, log.Named("uc.list_books"))
	listAvailableUC := catalogUC.NewListAvailableBooksUseCase(bookRepo, log.Named("uc.list_available"))

	// Accounts
	registerUC := userUC.NewRegisterUseCase(userRepo, hasher, mailer,
		cfg.Auth.AdminRegistrationCode, log.Named("uc.register"))
	loginUC := userUC.NewLoginUseCase(userRepo, hasher, jwtService, log.Named("uc.login"))
	getProfileUC := userUC.NewGetProfileUseCase(userRepo, log.Named("uc.profile"))
	updateProfileUC := userUC.NewUpdateProfileUseCase(userRepo, hasher, log.Named("uc.update_profile"))
	listUsersUC := userUC.NewListUsersUseCase(userRepo, log.Named("uc.list_users"))
	createUserUC := userUC.NewCreateUserUseCase(userRepo, hasher, log.Named("uc.create_user"))
	updateUserUC := userUC.NewUpdateUserUseCase(userRepo, hasher, log.Named("uc.update_user"))
	deleteUserUC := userUC.NewDeleteUserUseCase(userRepo, loanRepo, log.Named("uc.delete_user"))

	// Students
	createStudentUC := studentUC.NewCreateStudentUseCase(studentRepo, log.Named("uc.create_student"))
	updateStudentUC := studentUC.NewUpdateStudentUseCase(studentRepo, log.Named("uc.update_student"))
	deleteStudentUC := studentUC.NewDeleteStudentUseCase(studentRepo, log.Named("uc.delete_student"))
	getStudentUC := studentUC.NewGetStudentUseCase(studentRepo, log.Named("uc.get_student"))
	listStudentsUC := studentUC.NewListStudentsUseCase(studentRepo, log.Named("uc.list_students"))

	// Dashboard
	getStatsUC := dashboardUC.NewGetStatsUseCase(bookRepo, loanRepo, userRepo, log.Named("uc.stats"))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c := &Container{
		cfg: cfg,
		log: log,

		bookHandler: handlers.NewBookHandler(
			createBookUC, updateBookUC, deleteBookUC, getBookUC, listBooksUC, listAvailableUC),
		lendingHandler: handlers.NewLendingHandler(
			borrowUC, returnUC, listBorrowedUC, listAllBorrowedUC, repairUC),
		loanHandler:      handlers.NewLoanHandler(listLoansUC, deleteLoanUC),
		authHandler:      handlers.NewAuthHandler(registerUC, loginUC, getProfileUC),
		userHandler:      handlers.NewUserHandler(listUsersUC, createUserUC, updateUserUC, deleteUserUC, getProfileUC, updateProfileUC),
		studentHandler:   handlers.NewStudentHandler(createStudentUC, updateStudentUC, deleteStudentUC, getStudentUC, listStudentsUC),
		dashboardHandler: handlers.NewDashboardHandler(getStatsUC),

		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log.Named("middleware.auth")),
		rateLimiter:     middleware.NewRateLimiter(redisClient, 30, time.Minute),
		redisClient:     redisClient,
		notifyOverdueUC: notifyOverdueUC,
	}

	return c, nil
}

// NotifyOverdueLoansUseCase exposes the overdue scan for the server loop.
func (c *Container) NotifyOverdueLoansUseCase() *lendingUC.NotifyOverdueLoansUseCase {
	return c.notifyOverdueUC
}

// Shutdown releases resources held by the container.
func (c *Container) Shutdown() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
