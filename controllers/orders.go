package controllers

import (
	"errors"
	"net/http"

	"axelmotors/database"
	"axelmotors/events"
	"axelmotors/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyHeader carries the order id when the body does not.
const IdempotencyHeader = "Idempotency-Key"

// PlaceOrder reserves stock and records the order in one step. A replayed
// order id returns the stored order with 200 instead of 201; an id already
// used by another caller or for a different order is 409.
func (h *Handler) PlaceOrder(context *gin.Context) {
	var payload OrderPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	toolsID := payload.ToolsID
	if toolsID == "" {
		toolsID = payload.LegacyToolsID
	}
	if toolsID == "" {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "toolsId is required"})
		context.Abort()
		return
	}

	caller := CallerEmail(context)
	email := payload.Email
	if email == "" {
		email = caller
	}
	if email != caller {
		context.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden access"})
		context.Abort()
		return
	}

	id := payload.ID
	if id == "" {
		id = context.GetHeader(IdempotencyHeader)
	}

	order := &models.Order{
		ID:       id,
		ToolsID:  toolsID,
		ToolName: payload.ToolName,
		Email:    email,
		Name:     payload.Name,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Quantity: payload.Quantity,
		Price:    payload.Price,
	}

	created, err := h.store.PlaceOrder(context.Request.Context(), order)
	if err != nil {
		h.metrics.OrderOutcome(orderOutcome(err))
		h.abortWithError(context, err)
		return
	}

	if !created {
		h.metrics.OrderOutcome("replayed")
		context.JSON(http.StatusOK, order)
		return
	}

	h.metrics.OrderOutcome("placed")
	h.logger(context).Info("order_placed",
		zap.String("order_id", order.ID),
		zap.String("tool_id", order.ToolsID),
		zap.Int("quantity", order.Quantity),
	)
	h.publish(context, events.OrderPlaced, order)
	context.JSON(http.StatusCreated, order)
}

func orderOutcome(err error) string {
	switch {
	case errors.Is(err, database.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, database.ErrNotFound):
		return "unknown_tool"
	case errors.Is(err, database.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, database.ErrOrderIDConflict):
		return "id_conflict"
	default:
		return "error"
	}
}

// GetOrders lists the caller's own orders.
func (h *Handler) GetOrders(context *gin.Context) {
	email := context.Query("email")
	if email != CallerEmail(context) {
		context.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden access"})
		context.Abort()
		return
	}

	orders, err := h.store.ListOrders(context.Request.Context(), email)
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, orders)
}

func (h *Handler) GetAllOrders(context *gin.Context) {
	orders, err := h.store.ListOrders(context.Request.Context(), "")
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, orders)
}

func (h *Handler) DeleteOrders(context *gin.Context) {
	deleted, err := h.store.DeleteOrdersByEmail(context.Request.Context(), context.Param("email"))
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, DeleteResponse{DeletedCount: deleted})
}
