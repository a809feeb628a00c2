package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"axelmotors/database"
	"axelmotors/events"
	"axelmotors/logging"
	"axelmotors/metrics"
	"axelmotors/payment"
	"axelmotors/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailKey is the gin context key holding the authenticated caller's email.
const EmailKey = "email"

const publishTimeout = 2 * time.Second

type Options struct {
	Store          database.Store
	Tokens         *token.Manager
	Payments       payment.Provider
	Events         events.Publisher
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
	Currency       string
	VerifyPayments bool
}

// Handler serves every route. Its dependencies are built once at startup.
type Handler struct {
	store          database.Store
	tokens         *token.Manager
	payments       payment.Provider
	events         events.Publisher
	metrics        *metrics.Metrics
	log            *zap.Logger
	currency       string
	verifyPayments bool
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		store:          opts.Store,
		tokens:         opts.Tokens,
		payments:       opts.Payments,
		events:         opts.Events,
		metrics:        opts.Metrics,
		log:            opts.Logger,
		currency:       opts.Currency,
		verifyPayments: opts.VerifyPayments,
	}
	if h.payments == nil {
		h.payments = payment.Disabled{}
	}
	if h.events == nil {
		h.events = events.Nop{}
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.currency == "" {
		h.currency = "usd"
	}
	return h
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Axel Motors Portal running")
}

// CallerEmail returns the email Authenticate stored on the context.
func CallerEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return logging.FromContextOr(c.Request.Context(), h.log)
}

// bindOptionalJSON binds the body into dst, accepting an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		return false
	}
	return true
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	switch {
	case errors.Is(err, database.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, database.ErrInvalidQuantity),
		errors.Is(err, payment.ErrInvalidAmount):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, database.ErrInsufficientStock),
		errors.Is(err, database.ErrDuplicatePayment),
		errors.Is(err, database.ErrAlreadyPaid),
		errors.Is(err, database.ErrOrderIDConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, payment.ErrNotConfirmed):
		status, message = http.StatusPaymentRequired, err.Error()
	case errors.Is(err, payment.ErrNotConfigured):
		status, message = http.StatusServiceUnavailable, err.Error()
	}
	if status >= http.StatusInternalServerError {
		h.logger(c).Error("request_failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// publish sends a domain event after a committed write. Failures are logged
// and counted; they never fail the request.
func (h *Handler) publish(c *gin.Context, name string, payload any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
	defer cancel()
	if err := h.events.Publish(ctx, events.New(name, payload)); err != nil {
		h.metrics.PublishFailed(name)
		h.logger(c).Warn("event_publish_failed", zap.String("event", name), zap.Error(err))
	}
}
