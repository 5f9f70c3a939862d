package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionOrderController struct {
	orderService service.QuestionOrderService
}

func NewQuestionOrderController(orderService service.QuestionOrderService) *QuestionOrderController {
	return &QuestionOrderController{orderService: orderService}
}

// ListOrderItems godoc
// @Summary (Admin) List question numbers and their questions
// @Description Obtain the contest sequence starting at offset `skip`, at most `limit` items. Needs superuser privileges.
// @Tags Admin - Question Order
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Maximum number of items" default(100)
// @Success 200 {array} dto.QuestionOrderItemResponse
// @Router /questions-order [get]
func (c *QuestionOrderController) ListOrderItems(ctx *gin.Context) {
	skip, limit := pagination(ctx)
	items, err := c.orderService.GetAllOrderItems(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListOrderItems: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: "Failed to list question order items", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// CreateOrderItem godoc
// @Summary (Admin) Associate a question with a question number
// @Description Both the question number and the question must be unused in the sequence, and the question must exist. Needs superuser privileges.
// @Tags Admin - Question Order
// @Accept json
// @Produce json
// @Param order_item body dto.CreateQuestionOrderItemRequest true "Association to create"
// @Success 201 {object} dto.QuestionOrderItemResponse
// @Failure 404 {object} dto.ErrorResponse "Question does not exist"
// @Failure 409 {object} dto.ErrorResponse "Number or question already used"
// @Router /questions-order [post]
func (c *QuestionOrderController) CreateOrderItem(ctx *gin.Context) {
	var req dto.CreateQuestionOrderItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	item, err := c.orderService.CreateOrderItem(req)
	if err != nil {
		log.Warn().Err(err).Msg("Admin CreateOrderItem: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// GetOrderItem godoc
// @Summary (Admin) Obtain an association by ID
// @Tags Admin - Question Order
// @Produce json
// @Param order_item_id path int true "Order item ID"
// @Success 200 {object} dto.QuestionOrderItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions-order/{order_item_id} [get]
func (c *QuestionOrderController) GetOrderItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "order_item_id")
	if !ok {
		return
	}

	item, err := c.orderService.GetOrderItem(id)
	if err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// UpdateOrderItem godoc
// @Summary (Admin) Update an association by ID
// @Description Uniqueness of both fields is checked against every other row, so an update that keeps a field unchanged does not collide with itself. Needs superuser privileges.
// @Tags Admin - Question Order
// @Accept json
// @Produce json
// @Param order_item_id path int true "Order item ID"
// @Param order_item body dto.UpdateQuestionOrderItemRequest true "Fields to update"
// @Success 200 {object} dto.QuestionOrderItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /questions-order/{order_item_id} [put]
func (c *QuestionOrderController) UpdateOrderItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "order_item_id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionOrderItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	item, err := c.orderService.UpdateOrderItem(id, req)
	if err != nil {
		log.Warn().Err(err).Uint("order_item_id", id).Msg("Admin UpdateOrderItem: service error")
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// DeleteOrderItem godoc
// @Summary (Admin) Delete an association by ID
// @Tags Admin - Question Order
// @Produce json
// @Param order_item_id path int true "Order item ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions-order/{order_item_id} [delete]
func (c *QuestionOrderController) DeleteOrderItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "order_item_id")
	if !ok {
		return
	}

	if err := c.orderService.DeleteOrderItem(id); err != nil {
		ctx.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "The question and its associated question number have been deleted successfully"})
}
