package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Cryptoquest/config"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/middleware"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	userService    service.UserService
	contestService service.ContestService
	emailService   service.EmailService
	cfg            *config.Config
}

func NewUserController(userService service.UserService, contestService service.ContestService, emailService service.EmailService, cfg *config.Config) *UserController {
	return &UserController{
		userService:    userService,
		contestService: contestService,
		emailService:   emailService,
		cfg:            cfg,
	}
}

func pagination(ctx *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}

// GetMe godoc
// @Summary Get the current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var resp dto.UserResponse
	if err := copier.Copy(&resp, current); err != nil {
		log.Error().Err(err).Msg("GetMe: failed to map user")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateMe godoc
// @Summary Update the current user
// @Description Participants can change their own name, email and password. Contest progress cannot be changed here.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateMeRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var req dto.UpdateMeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.userService.UpdateMe(current, req)
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateUserOpen godoc
// @Summary Register a new user without authentication
// @Description Only available when open registration is enabled on the server.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "New user details"
// @Success 201 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse "Open registration is disabled"
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/open [post]
func (c *UserController) CreateUserOpen(ctx *gin.Context) {
	if !c.cfg.UsersOpenRegistration {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Open user registration is forbidden on this server"})
		return
	}

	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	req.IsSuperuser = false

	resp, err := c.userService.CreateUser(req)
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	if c.emailService.Enabled() {
		go func(email, username string) {
			if err := c.emailService.SendNewAccountEmail(email, username); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("CreateUserOpen: failed to send new account email")
			}
		}(resp.Email, resp.Username)
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetUser godoc
// @Summary Get a user by id
// @Description Regular users can only fetch themselves; superusers can fetch anyone.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{user_id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user id"})
		return
	}

	if uint(id) == current.ID {
		var resp dto.UserResponse
		if err := copier.Copy(&resp, current); err != nil {
			log.Error().Err(err).Msg("GetUser: failed to map user")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
			return
		}
		ctx.JSON(http.StatusOK, resp)
		return
	}

	// Privilege is checked before existence so regular users cannot probe ids.
	if !current.IsSuperuser {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "The user doesn't have enough privileges"})
		return
	}

	resp, err := c.userService.GetUser(uint(id))
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Leaderboard godoc
// @Summary Get the contest leaderboard
// @Description Non-superuser participants ordered by rank. Ties share a rank; the earlier advance comes first.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} dto.LeaderboardEntryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	skip, limit := pagination(ctx)
	entries, err := c.contestService.Leaderboard(skip, limit)
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}
