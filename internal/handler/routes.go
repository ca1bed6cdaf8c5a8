package handler

import (
	"github.com/Rdevang/Smart-Split-sub004/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, session *middleware.SessionMiddleware, settlementHandler *SettlementHandler, simplifyHandler *SimplifyHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Settlement routes. Session extraction is optional here so that rate
	// limiting and validation apply before the authentication check.
	settlements := api.Group("", session.Extract())
	settlements.POST("/groups/:groupId/settlements", settlementHandler.Record)
	settlements.POST("/settlements/:id/approve", settlementHandler.Approve)
	settlements.POST("/settlements/:id/reject", settlementHandler.Reject)

	// Balance simplification is a pure read-only projection, no auth.
	api.POST("/balances/simplify", simplifyHandler.Simplify)
}
