package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/config"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

type UtilsController struct {
	cfg          *config.Config
	emailService service.EmailService
}

func NewUtilsController(cfg *config.Config, emailService service.EmailService) *UtilsController {
	return &UtilsController{cfg: cfg, emailService: emailService}
}

// TestEmail godoc
// @Summary (Admin) Send a test email
// @Description Sends a test email to the provided address. Needs superuser privileges.
// @Tags Admin - Utils
// @Produce json
// @Param email_to query string true "Recipient email address"
// @Success 201 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /utils/test-email [post]
func (c *UtilsController) TestEmail(ctx *gin.Context) {
	emailTo := ctx.Query("email_to")
	if emailTo == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing email_to"})
		return
	}

	if err := c.emailService.SendTestEmail(emailTo); err != nil {
		log.Error().Err(err).Str("email", emailTo).Msg("TestEmail: send failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to send test email", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Test email sent"})
}

// StartTime godoc
// @Summary Returns the contest start time
// @Tags Utils
// @Produce json
// @Success 200 {object} dto.TimestampResponse
// @Router /utils/start-time [get]
func (c *UtilsController) StartTime(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.TimestampResponse{Timestamp: c.cfg.EventStartTime})
}

// EndTime godoc
// @Summary Returns the contest end time
// @Tags Utils
// @Produce json
// @Success 200 {object} dto.TimestampResponse
// @Router /utils/end-time [get]
func (c *UtilsController) EndTime(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.TimestampResponse{Timestamp: c.cfg.EventEndTime})
}
