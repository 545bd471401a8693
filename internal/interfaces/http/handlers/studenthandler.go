package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libris/internal/application/student/usecases"
	"libris/internal/domain/student"
	"libris/internal/shared/logger"
	"libris/internal/shared/utils"
)

type StudentHandler struct {
	createStudentUC *usecases.CreateStudentUseCase
	updateStudentUC *usecases.UpdateStudentUseCase
	deleteStudentUC *usecases.DeleteStudentUseCase
	getStudentUC    *usecases.GetStudentUseCase
	listStudentsUC  *usecases.ListStudentsUseCase
	logger          logger.Interface
}

func NewStudentHandler(
	createStudentUC *usecases.CreateStudentUseCase,
	updateStudentUC *usecases.UpdateStudentUseCase,
	deleteStudentUC *usecases.DeleteStudentUseCase,
	getStudentUC *usecases.GetStudentUseCase,
	listStudentsUC *usecases.ListStudentsUseCase,
) *StudentHandler {
	return &StudentHandler{
		createStudentUC: createStudentUC,
		updateStudentUC: updateStudentUC,
		deleteStudentUC: deleteStudentUC,
		getStudentUC:    getStudentUC,
		listStudentsUC:  listStudentsUC,
		logger:          logger.NewLogger(),
	}
}

type StudentRequest struct {
	StudentName string `json:"student_name" binding:"required,max=255"`
	Block       string `json:"block" binding:"max=50"`
	YearLevel   string `json:"year_level" binding:"max=50"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"max=50"`
}

type StudentResponse struct {
	ID          uint   `json:"id"`
	StudentName string `json:"student_name"`
	Block       string `json:"block,omitempty"`
	YearLevel   string `json:"year_level,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toStudentResponse(s *student.Student) StudentResponse {
	return StudentResponse{
		ID:          s.ID(),
		StudentName: s.StudentName(),
		Block:       s.Block(),
		YearLevel:   s.YearLevel(),
		Email:       s.Email(),
		Phone:       s.Phone(),
		CreatedAt:   s.CreatedAt().Format(time.RFC3339),
	}
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	query := usecases.ListStudentsQuery{Principal: principalFromContext(c)}

	result, err := h.listStudentsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]StudentResponse, 0, len(result.Students))
	for _, s := range result.Students {
		items = append(items, toStudentResponse(s))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID, err := utils.ParseIDParam(c, "id", "student")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetStudentQuery{
		Principal: principalFromContext(c),
		StudentID: studentID,
	}

	result, err := h.getStudentUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toStudentResponse(result.Student))
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create student", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.CreateStudentCommand{
		Principal:   principalFromContext(c),
		StudentName: req.StudentName,
		Block:       req.Block,
		YearLevel:   req.YearLevel,
		Email:       req.Email,
		Phone:       req.Phone,
	}

	result, err := h.createStudentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toStudentResponse(result.Student), "student created")
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID, err := utils.ParseIDParam(c, "id", "student")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update student", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.UpdateStudentCommand{
		Principal:   principalFromContext(c),
		StudentID:   studentID,
		StudentName: req.StudentName,
		Block:       req.Block,
		YearLevel:   req.YearLevel,
		Email:       req.Email,
		Phone:       req.Phone,
	}

	result, err := h.updateStudentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "student updated", toStudentResponse(result.Student))
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, err := utils.ParseIDParam(c, "id", "student")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteStudentCommand{
		Principal: principalFromContext(c),
		StudentID: studentID,
	}

	if err := h.deleteStudentUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "student deleted", nil)
}
