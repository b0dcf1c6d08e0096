// Package router wires handlers, middleware and route groups onto the
// Echo instance. Public catalogue routes sit behind the response cache
// and rate limiter; customer and admin routes behind JWT auth and role
// checks.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-room-booking/internal/config"
	"github.com/iliyamo/cinema-room-booking/internal/handler"
	"github.com/iliyamo/cinema-room-booking/internal/middleware"
	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// RegisterHealth registers the unauthenticated liveness endpoint.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and token lifecycle
// routes. Logout and /me require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	auth.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the unauthenticated catalogue and
// availability routes. Catalogue lists are cached per namespace;
// availability answers are cached too but under their own namespace so
// every booking write retires them at once.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewTokenBucket(rlCfg, rdb))

	rooms := g.Group("", middleware.ResponseCache(cacheCfg, rdb, "rooms"))
	rooms.GET("/rooms", p.ListRooms)
	rooms.GET("/rooms/:id", p.GetRoom)

	avail := g.Group("", middleware.ResponseCache(cacheCfg, rdb, "availability"))
	avail.GET("/rooms/:id/slots", p.RoomSlots)
	avail.GET("/rooms/:id/availability", p.CheckAvailability)

	cons := g.Group("", middleware.ResponseCache(cacheCfg, rdb, "consumables"))
	cons.GET("/consumables", p.ListConsumables)

	formulas := g.Group("", middleware.ResponseCache(cacheCfg, rdb, "formulas"))
	formulas.GET("/formulas", p.ListFormulas)
}

// RegisterCustomer registers booking endpoints for authenticated
// customers and admins alike: admins can always act as customers.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.NewTokenBucket(rlCfg, rdb),
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
	)
	g.POST("/bookings/quote", h.Quote)
	g.POST("/bookings", h.Create)
	g.GET("/my-bookings", h.ListMine)
	g.GET("/bookings/:id", h.GetMine)
	g.PATCH("/bookings/:id", h.Update)
	g.POST("/bookings/:id/cancel", h.Cancel)
}

// RegisterAdmin registers the back-office under /v1/admin, restricted
// to the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/rooms", h.ListRooms)
	g.POST("/rooms", h.CreateRoom)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)

	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	g.DELETE("/bookings/:id", h.DeleteBooking)

	g.GET("/consumables", h.ListConsumables)
	g.POST("/consumables", h.CreateConsumable)
	g.PUT("/consumables/:id", h.UpdateConsumable)
	g.DELETE("/consumables/:id", h.DeleteConsumable)

	g.GET("/stats", h.Stats)
}
