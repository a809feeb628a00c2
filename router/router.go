package router

import (
	"axelmotors/controllers"
	"axelmotors/database"
	"axelmotors/metrics"
	"axelmotors/middleware"
	"axelmotors/models"
	"axelmotors/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Handler  *controllers.Handler
	Store    database.Store
	Tokens   *token.Manager
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// New builds the engine with every route mounted. Public routes come first,
// then the token group, then the admin group inside it.
func New(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Observability(logger, deps.Metrics), middleware.Recovery(logger))

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	initRouter(&r.RouterGroup, deps)
	return r
}

func initRouter(api *gin.RouterGroup, deps Deps) {
	h := deps.Handler

	api.GET("/", h.Root)
	api.PUT("/user/:email", h.PutUser)
	api.PUT("/users/myProfile", h.PutProfile)
	api.GET("/admin/:email", h.GetAdmin)
	api.GET("/tools", h.GetTools)
	api.DELETE("/orders/:email", h.DeleteOrders)
	api.GET("/review", h.GetReviews)

	auth := api.Group("")
	auth.Use(middleware.Authenticate(deps.Tokens))
	{
		auth.GET("/users", h.GetUsers)
		auth.POST("/tools", h.CreateTool)
		auth.GET("/tools/:id", h.GetTool)
		auth.PATCH("/tools/:id", h.PayTool)
		auth.DELETE("/tools/:id", h.DeleteTool)
		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/orders", h.GetOrders)
		auth.POST("/review", h.CreateReview)
		auth.POST("/create-payment-intent", h.CreatePaymentIntent)
	}

	admin := auth.Group("")
	admin.Use(middleware.RequireRole(deps.Store, models.RoleAdmin))
	{
		admin.PUT("/users/admin/:email", h.MakeAdmin)
		admin.GET("/allOrders", h.GetAllOrders)
	}
}
