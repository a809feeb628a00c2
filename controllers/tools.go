package controllers

import (
	"net/http"

	"axelmotors/events"
	"axelmotors/models"
	"axelmotors/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) GetTools(context *gin.Context) {
	tools, err := h.store.ListTools(context.Request.Context())
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, tools)
}

func (h *Handler) GetTool(context *gin.Context) {
	tool, err := h.store.FindTool(context.Request.Context(), context.Param("id"))
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, tool)
}

func (h *Handler) CreateTool(context *gin.Context) {
	var tool models.Tool
	if err := context.ShouldBindJSON(&tool); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}
	tool.Paid = false
	tool.TransactionID = ""

	if err := h.store.CreateTool(context.Request.Context(), &tool); err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusCreated, tool)
}

// PayTool records a settled payment against a tool. With verification on,
// the transaction id must name a succeeded intent at the provider in the
// configured currency, and the recorded amount is the provider's.
func (h *Handler) PayTool(context *gin.Context) {
	var payload ToolPaymentPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	amount := payload.Amount
	if h.verifyPayments {
		var expected int64
		if payload.Amount > 0 {
			minor, err := payment.ToMinorUnits(payload.Amount)
			if err != nil {
				h.abortWithError(context, err)
				return
			}
			expected = minor
		}
		intent, err := payment.Confirm(context.Request.Context(), h.payments, payload.TransactionID, h.currency, expected)
		if err != nil {
			h.logger(context).Info("payment_rejected",
				zap.String("transaction_id", payload.TransactionID),
				zap.Error(err),
			)
			h.abortWithError(context, err)
			return
		}
		amount = payment.FromMinorUnits(intent.Amount)
	}

	email := payload.Email
	if email == "" {
		email = CallerEmail(context)
	}
	record := &models.Payment{
		TransactionID: payload.TransactionID,
		Amount:        amount,
		Email:         email,
	}

	tool, err := h.store.MarkToolPaid(context.Request.Context(), context.Param("id"), record)
	if err != nil {
		h.abortWithError(context, err)
		return
	}

	h.publish(context, events.ToolPaid, record)
	context.JSON(http.StatusOK, tool)
}

func (h *Handler) DeleteTool(context *gin.Context) {
	deleted, err := h.store.DeleteTool(context.Request.Context(), context.Param("id"))
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, DeleteResponse{DeletedCount: deleted})
}
