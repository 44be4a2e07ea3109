// Package router wires HTTP routes to handlers and applies the middleware
// stack. Public read endpoints sit behind the response cache; everything
// sits behind the rate limiter; mutations require a bearer token and, where
// noted, a specific account role.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/handler"
	"github.com/bloodlink/bloodlink-tn/internal/middleware"
	"github.com/bloodlink/bloodlink-tn/internal/model"
)

// Handlers groups everything RegisterRoutes needs.
type Handlers struct {
	Auth      *handler.AuthHandler
	Donor     *handler.DonorHandler
	Request   *handler.RequestHandler
	Hospital  *handler.HospitalHandler
	Notify    *handler.NotifyHandler
	Dashboard *handler.DashboardHandler
}

// RegisterRoutes registers the full API surface under /api. The cache
// middleware may be a passthrough when Redis is unavailable.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/api/health", handler.Health)

	api := e.Group("/api/v1")

	// Session issuance, no auth required.
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me, middleware.JWTAuth(jwtSecret))

	// Public reads, cached.
	donors := api.Group("/donors")
	donors.GET("/all", h.Donor.All, cache)
	donors.GET("/map", h.Donor.Map, cache)

	// Donor mutations and profile reads need a session; registering and
	// deactivating additionally need the donor role.
	donors.POST("/register", h.Donor.Register,
		middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleDonor))
	donors.POST("/deactivate", h.Donor.Deactivate,
		middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleDonor))
	donors.GET("/my-profile", h.Donor.MyProfile, middleware.JWTAuth(jwtSecret))
	donors.GET("/:id", h.Donor.GetByID)

	requests := api.Group("/requests")
	requests.GET("/all", h.Request.All)
	requests.POST("/create", h.Request.Create,
		middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleRequester))
	requests.GET("/my-requests", h.Request.MyRequests, middleware.JWTAuth(jwtSecret))
	requests.GET("/:id", h.Request.GetByID)
	requests.POST("/:id/fulfill", h.Request.Fulfill, middleware.JWTAuth(jwtSecret))
	requests.GET("/:id/match-donors", h.Request.MatchDonors, middleware.JWTAuth(jwtSecret))

	hospitals := api.Group("/hospitals", cache)
	hospitals.GET("/districts", h.Hospital.Districts)
	hospitals.GET("/all", h.Hospital.All)
	hospitals.GET("/:district", h.Hospital.ByDistrict)

	notify := api.Group("/notify", middleware.JWTAuth(jwtSecret))
	notify.POST("/request-donors", h.Notify.RequestDonors)
	notify.POST("/contact-donor", h.Notify.ContactDonor)

	api.GET("/dashboard/stats", h.Dashboard.Stats, cache)
}
