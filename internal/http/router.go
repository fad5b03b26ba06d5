package api

import (
	"log"
	stdhttp "net/http"

	intconfig "hauling-backend/internal/config"
	h "hauling-backend/internal/http/handlers"
	"hauling-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		authed := api.Group("")
		authed.Use(middleware.Auth(env.JWTSecret))

		// Trips (waybills)
		trips := authed.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:waybillNo", h.GetTripDetail)
		trips.PUT("/:waybillNo", h.UpdateTrip)
		trips.DELETE("/:waybillNo", h.DeleteTrip)
		trips.PUT("/:waybillNo/capacity", h.UpdateTripCapacity)
		trips.PUT("/:waybillNo/adjustment", h.UpdateTripAdjustment)
		trips.GET("/:waybillNo/duplicate-status", h.GetDuplicateStatus)
		trips.GET("/:waybillNo/manifest", h.GetWaybillManifest)

		// Drops (consignees)
		trips.GET("/:waybillNo/drops", h.GetTripDrops)
		trips.POST("/:waybillNo/drops", h.CreateDrop)
		drops := authed.Group("/drops")
		drops.PUT("/:id", h.UpdateDrop)
		drops.DELETE("/:id", h.DeleteDrop)

		// Reports
		reports := authed.Group("/reports")
		reports.GET("/sales", h.GetSalesReport)
		reports.GET("/sales/export", h.ExportSalesReport)

		// Dispatch settings
		settings := authed.Group("/settings")
		settings.GET("/extra-drop-rate", h.GetExtraDropRate)
		settings.PUT("/extra-drop-rate", h.SetExtraDropRate)

		// Fleet
		trucks := authed.Group("/trucks")
		trucks.GET("", h.GetTrucks)
		trucks.POST("", h.CreateTruck)
		trucks.PUT("/:id", h.UpdateTruck)
		trucks.DELETE("/:id", h.DeleteTruck)
	}

	return r
}
