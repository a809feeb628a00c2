package controllers

import (
	"errors"
	"net/http"

	"axelmotors/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreatePaymentIntent opens a card intent for the price, in minor units of
// the configured currency, and hands the client secret back.
func (h *Handler) CreatePaymentIntent(context *gin.Context) {
	var payload PaymentIntentPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	amount, err := payment.ToMinorUnits(payload.Price)
	if err != nil {
		h.metrics.PaymentIntentOutcome("invalid_amount")
		h.abortWithError(context, err)
		return
	}

	intent, err := h.payments.CreateIntent(context.Request.Context(), amount, h.currency)
	if err != nil {
		outcome := "error"
		if errors.Is(err, payment.ErrNotConfigured) {
			outcome = "not_configured"
		}
		h.metrics.PaymentIntentOutcome(outcome)
		h.abortWithError(context, err)
		return
	}

	h.metrics.PaymentIntentOutcome("created")
	h.logger(context).Info("payment_intent_created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", amount),
		zap.String("currency", h.currency),
	)
	context.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}
