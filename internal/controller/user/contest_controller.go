package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/middleware"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

const completedPath = "/api/v1/contest/completed"

type ContestController struct {
	contestService service.ContestService
}

func NewContestController(contestService service.ContestService) *ContestController {
	return &ContestController{contestService: contestService}
}

// CurrentQuestion godoc
// @Summary Get the current question
// @Description Returns the image for the caller's current question. With image=true the raw bytes are returned instead of JSON. Redirects to the completion page once there are no questions left.
// @Tags Contest
// @Produce json
// @Security BearerAuth
// @Param image query bool false "Return the raw image bytes"
// @Success 200 {object} dto.CurrentQuestionResponse
// @Failure 307 {string} string "Contest completed"
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/question [get]
func (c *ContestController) CurrentQuestion(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	resp, err := c.contestService.CurrentQuestion(current)
	if err != nil {
		if errors.Is(err, apperror.ErrContestCompleted) {
			ctx.Redirect(http.StatusTemporaryRedirect, completedPath)
			return
		}
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	if ctx.Query("image") == "true" {
		ctx.Data(http.StatusOK, resp.ContentType, resp.Content)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer to the current question
// @Description A correct answer advances the caller to the next question. Redirects to the completion page when the contest is already finished for the caller.
// @Tags Contest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitAnswerRequest true "Submitted answer"
// @Success 200 {object} dto.MessageResponse
// @Failure 303 {string} string "Contest completed"
// @Failure 400 {object} dto.ErrorResponse "Incorrect answer"
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/answer [post]
func (c *ContestController) SubmitAnswer(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.contestService.SubmitAnswer(current, req); err != nil {
		if errors.Is(err, apperror.ErrContestCompleted) {
			ctx.Redirect(http.StatusSeeOther, completedPath)
			return
		}
		if errors.Is(err, apperror.ErrIncorrectAnswer) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Incorrect answer"})
			return
		}
		log.Error().Err(err).Uint("user_id", current.ID).Msg("SubmitAnswer: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Correct answer"})
}

// Completed godoc
// @Summary Contest completion page
// @Description Terminal page shown to participants who have answered every question.
// @Tags Contest
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /contest/completed [get]
func (c *ContestController) Completed(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Congratulations, you have completed the contest!"})
}
