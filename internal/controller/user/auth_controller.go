package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/middleware"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Obtain a login access token
// @Description OAuth2-compatible password flow. The username form field holds the email address.
// @Tags Login
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Incorrect email address or password"
// @Router /login/access-token [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.authService.Login(req)
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// TestToken godoc
// @Summary Test the obtained access token
// @Description Returns the caller's details if the bearer token is valid.
// @Tags Login
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /login/test-token [post]
func (c *AuthController) TestToken(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var resp dto.UserResponse
	resp.ID = current.ID
	resp.FullName = current.FullName
	resp.Email = current.Email
	resp.Username = current.Username
	resp.IsSuperuser = current.IsSuperuser
	resp.QuestionNumber = current.QuestionNumber
	resp.Rank = current.Rank
	ctx.JSON(http.StatusOK, resp)
}

// RecoverPassword godoc
// @Summary Send a password recovery email
// @Tags Login
// @Produce json
// @Param email path string true "Registered email address"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Email not registered"
// @Router /password-recovery/{email} [post]
func (c *AuthController) RecoverPassword(ctx *gin.Context) {
	email := ctx.Param("email")
	if err := c.authService.RecoverPassword(email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("RecoverPassword: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password recovery email sent"})
}

// ResetPassword godoc
// @Summary Reset a user's password
// @Description The token comes from the reset-password link sent by email.
// @Tags Login
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid token"
// @Router /reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.authService.ResetPassword(req); err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
