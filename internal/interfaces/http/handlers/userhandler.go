package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libris/internal/application/user/usecases"
	"libris/internal/shared/logger"
	"libris/internal/shared/utils"
)

type UserHandler struct {
	listUsersUC     *usecases.ListUsersUseCase
	createUserUC    *usecases.CreateUserUseCase
	updateUserUC    *usecases.UpdateUserUseCase
	deleteUserUC    *usecases.DeleteUserUseCase
	getProfileUC    *usecases.GetProfileUseCase
	updateProfileUC *usecases.UpdateProfileUseCase
	logger          logger.Interface
}

func NewUserHandler(
	listUsersUC *usecases.ListUsersUseCase,
	createUserUC *usecases.CreateUserUseCase,
	updateUserUC *usecases.UpdateUserUseCase,
	deleteUserUC *usecases.DeleteUserUseCase,
	getProfileUC *usecases.GetProfileUseCase,
	updateProfileUC *usecases.UpdateProfileUseCase,
) *UserHandler {
	return &UserHandler{
		listUsersUC:     listUsersUC,
		createUserUC:    createUserUC,
		updateUserUC:    updateUserUC,
		deleteUserUC:    deleteUserUC,
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		logger:          logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListUsersQuery{
		Principal: principalFromContext(c),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		Role:      c.Query("role"),
		Status:    c.Query("status"),
	}

	result, err := h.listUsersUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]UserResponse, 0, len(result.Users))
	for _, u := range result.Users {
		items = append(items, toUserResponse(u))
	}

	utils.ListSuccessResponse(c, items, result.Total, pagination.Page, pagination.PageSize)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.CreateUserCommand{
		Principal: principalFromContext(c),
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toUserResponse(result.User), "user created")
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.UpdateUserCommand{
		Principal: principalFromContext(c),
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Status:    req.Status,
	}

	result, err := h.updateUserUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated", toUserResponse(result.User))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteUserCommand{
		Principal: principalFromContext(c),
		UserID:    userID,
	}

	if err := h.deleteUserUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user deleted", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	query := usecases.GetProfileQuery{Principal: principalFromContext(c)}

	result, err := h.getProfileUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toUserResponse(result.User))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update profile", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.UpdateProfileCommand{
		Principal: principalFromContext(c),
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated", toUserResponse(result.User))
}
