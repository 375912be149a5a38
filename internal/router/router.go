// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-registration/internal/handler"
	"github.com/iliyamo/conference-registration/internal/middleware"
	"github.com/iliyamo/conference-registration/internal/model"
)

// RegisterPublic registers the unauthenticated surface: health check, the
// pricing read side, the submission endpoint and the cached site content.
//
// The fee and early-bird routes are intentionally NOT behind the response
// cache: the early-bird window is a live predicate and admin fee edits must
// be visible to the very next preview.  Only the content routes, which
// change between deploys at most, take the cache middleware.
func RegisterPublic(e *echo.Echo, fees *handler.FeeHandler, regs *handler.RegistrationHandler,
	content *handler.ContentHandler, ratelimit, cache echo.MiddlewareFunc) {

	e.GET("/healthz", handler.Health)

	e.GET("/v1/early-bird", fees.EarlyBirdStatus)
	e.GET("/v1/fees", fees.ListFees)
	e.GET("/v1/fees/preview", fees.PreviewFee)

	e.POST("/v1/registrations", regs.Submit, ratelimit)

	cc := e.Group("/v1/content", cache)
	cc.GET("/speakers", content.Speakers)
	cc.GET("/schedule", content.Schedule)
}

// RegisterAuth registers login/refresh/logout under /v1/auth and the
// token-protected /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RolePresenter))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterAdmin registers the dashboard surface.  Every route requires a
// valid access token carrying the ADMIN role; the role gate runs before any
// handler, so no admin state transition can start unauthorized.
func RegisterAdmin(e *echo.Echo, regs *handler.AdminRegistrationHandler, pricing *handler.AdminPricingHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/registrations", regs.List)
	g.GET("/registrations/export", regs.ExportPapers)
	g.PATCH("/registrations/:id/payment-status", regs.UpdatePaymentStatus)
	g.PATCH("/registrations/:id/paper-status", regs.UpdatePaperStatus)
	g.PATCH("/registrations/:id/review-status", regs.UpdateReviewStatus)
	g.DELETE("/registrations/:id", regs.Delete)

	g.PUT("/fees/:id", pricing.UpdateFee)
	g.GET("/periods", pricing.ListPeriods)
	g.POST("/periods", pricing.CreatePeriod)
	g.PATCH("/periods/:id", pricing.SetPeriodActive)
}
