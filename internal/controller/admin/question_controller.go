package admin

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary (Admin) List questions
// @Description Obtain a list of questions starting at offset `skip`, at most `limit` items. Needs superuser privileges.
// @Tags Admin - Questions
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Maximum number of items" default(100)
// @Success 200 {array} dto.QuestionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	skip, limit := pagination(ctx)
	questions, err := c.questionService.GetAllQuestions(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListQuestions: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: "Failed to list questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary (Admin) Add a new question
// @Description Create a question from a multipart form: an `answer` field and an `image` file (JPEG or PNG only). Needs superuser privileges.
// @Tags Admin - Questions
// @Accept mpfd
// @Produce json
// @Param answer formData string true "Answer string (normalized before storage)"
// @Param image formData file true "Question image"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Not an accepted image type"
// @Failure 409 {object} dto.ErrorResponse "Answer already exists"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	answer := ctx.PostForm("answer")
	if answer == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing answer field"})
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing image file", Details: []string{err.Error()}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not open uploaded file", Details: []string{err.Error()}})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file", Details: []string{err.Error()}})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	question, err := c.questionService.CreateQuestion(answer, content, contentType)
	if err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// GetQuestion godoc
// @Summary (Admin) Obtain a question's details by ID
// @Description Returns the question including its answer. With `image=true` the raw image bytes are returned with the stored Content-Type instead of JSON. Needs superuser privileges.
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Param image query bool false "Return the raw image instead of JSON"
// @Success 200 {object} dto.QuestionDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := idParam(ctx, "question_id")
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestion(id)
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	if ctx.Query("image") == "true" {
		ctx.Data(http.StatusOK, question.ContentType, question.Content)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question's answer by ID
// @Description Only the answer can change; the image is immutable after creation. Needs superuser privileges.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "New answer"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Answer already exists"
// @Router /questions/{question_id} [patch]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := idParam(ctx, "question_id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.UpdateQuestion(id, req)
	if err != nil {
		log.Warn().Err(err).Uint("question_id", id).Msg("Admin UpdateQuestion: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question by ID
// @Description Deleting a question also removes its order item, if any. Needs superuser privileges.
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := idParam(ctx, "question_id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(id); err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted successfully"})
}

// pagination reads skip/limit query params with the usual defaults.
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

func idParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}
