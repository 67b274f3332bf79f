package routes

import (
	"shareit/app"
	"shareit/controllers"
	"shareit/metrics"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, a *app.App) {
	s := controllers.NewSrv(a)
	uc := controllers.NewUserController(s)
	itemCtl := controllers.NewItemController(s)
	bookingCtl := controllers.NewBookingController(s)
	requestCtl := controllers.NewRequestController(s)

	if a.Config.Monitoring.PrometheusEnabled {
		metrics.Register()
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	users := r.Group("/users")
	{
		users.POST("", uc.Create)
		users.GET("", uc.List)
		users.GET("/:id", uc.Get)
		users.PATCH("/:id", uc.Update)
		users.DELETE("/:id", uc.Delete)
	}

	items := r.Group("/items")
	{
		items.POST("", itemCtl.Create)
		items.GET("", itemCtl.ListOwned)
		items.GET("/search", itemCtl.Search)
		items.GET("/:id", itemCtl.Get)
		items.PATCH("/:id", itemCtl.Update)
		items.POST("/:id/comment", itemCtl.AddComment)
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("", bookingCtl.Create)
		bookings.GET("", bookingCtl.ListForRenter)
		bookings.GET("/owner", bookingCtl.ListForOwner)
		bookings.GET("/:id", bookingCtl.Get)
		bookings.PATCH("/:id", bookingCtl.Decide)
	}

	requests := r.Group("/requests")
	{
		requests.POST("", requestCtl.Create)
		requests.GET("", requestCtl.ListOwn)
		requests.GET("/all", requestCtl.ListOthers)
		requests.GET("/:id", requestCtl.Get)
	}
}
