package middleware

import (
	"net/http"
	"strconv"
	"time"

	"axelmotors/controllers"
	"axelmotors/logging"
	"axelmotors/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const headerRequestID = "X-Request-ID"

// Observability wraps every request with a request id, a request-scoped
// logger, a server span, HTTP metrics and one access log line.
func Observability(base *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	tracer := otel.Tracer("axelmotors.http")
	return func(context *gin.Context) {
		start := time.Now()
		request := context.Request

		rid := request.Header.Get(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		context.Header(headerRequestID, rid)

		route := context.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := otel.GetTextMapPropagator().Extract(request.Context(), propagation.HeaderCarrier(request.Header))
		ctx, span := tracer.Start(ctx, request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", request.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", request.URL.Path),
				attribute.String("http.user_agent", request.UserAgent()),
			),
		)
		defer span.End()

		fields := []zap.Field{zap.String("request_id", rid)}
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
		logger := base.With(fields...)
		context.Request = request.WithContext(logging.ContextWithLogger(ctx, logger))

		context.Next()

		status := context.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		latency := time.Since(start)
		m.ObserveHTTP(request.Method, route, strconv.Itoa(status), latency.Seconds())

		logFields := []zap.Field{
			zap.String("method", request.Method),
			zap.String("route", route),
			zap.String("path", request.URL.Path),
			zap.Int("status", status),
			zap.Int64("latency_ms", latency.Milliseconds()),
		}
		if email := context.GetString(controllers.EmailKey); email != "" {
			logFields = append(logFields, zap.String("email", email))
		}
		logger.Info("http_access", logFields...)
	}
}

// Recovery turns a panic into a 500 JSON error and logs it.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(context *gin.Context, recovered any) {
		logging.FromContextOr(context.Request.Context(), base).Error("panic_recovered",
			zap.Any("panic", recovered),
			zap.String("path", context.Request.URL.Path),
			zap.Stack("stack"),
		)
		context.AbortWithStatusJSON(http.StatusInternalServerError, controllers.ErrorResponse{Error: "Internal server error"})
	})
}
