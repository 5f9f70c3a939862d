package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

type UserAdminController struct {
	userService  service.UserService
	emailService service.EmailService
}

func NewUserAdminController(userService service.UserService, emailService service.EmailService) *UserAdminController {
	return &UserAdminController{userService: userService, emailService: emailService}
}

// ListUsers godoc
// @Summary (Admin) List users
// @Description Obtain a list of users starting at offset `skip`, at most `limit` items. Needs superuser privileges.
// @Tags Admin - Users
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Maximum number of items" default(100)
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (c *UserAdminController) ListUsers(ctx *gin.Context) {
	skip, limit := pagination(ctx)
	users, err := c.userService.GetAllUsers(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListUsers: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: "Failed to list users", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary (Admin) Create a new user
// @Description Email and username must both be unused. A new-account email is sent when email sending is configured. Needs superuser privileges.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User to create"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse "Email or username already registered"
// @Router /users [post]
func (c *UserAdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.userService.CreateUser(req)
	if err != nil {
		log.Warn().Err(err).Msg("Admin CreateUser: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	// Fire-and-forget side channel; account creation already committed.
	if c.emailService.Enabled() {
		go func(email, username string) {
			if err := c.emailService.SendNewAccountEmail(email, username); err != nil {
				log.Error().Err(err).Str("email", email).Msg("Failed to send new-account email")
			}
		}(user.Email, user.Username)
	}

	ctx.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary (Admin) Update a user's details by ID
// @Description Setting question_number also refreshes its timestamp and recomputes every rank. Needs superuser privileges.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id} [put]
func (c *UserAdminController) UpdateUser(ctx *gin.Context) {
	id, ok := idParam(ctx, "user_id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.userService.UpdateUser(id, req)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", id).Msg("Admin UpdateUser: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user by ID
// @Description Removing a user recomputes every remaining rank. Needs superuser privileges.
// @Tags Admin - Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id} [delete]
func (c *UserAdminController) DeleteUser(ctx *gin.Context) {
	id, ok := idParam(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(id); err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}
