package handlers

import (
	"net/http"
	"strconv"

	"github.com/emberloop/backend/internal/streak"
	"github.com/labstack/echo/v4"
)

// StreakHandler handles streak-related HTTP requests
type StreakHandler struct {
	calculator *streak.Calculator
}

// NewStreakHandler creates a new StreakHandler
func NewStreakHandler(calculator *streak.Calculator) *StreakHandler {
	return &StreakHandler{calculator: calculator}
}

// RegisterStreakRoutes registers streak-related routes
func (h *StreakHandler) RegisterStreakRoutes(g *echo.Group) {
	g.GET("/streak", h.GetOwnStreak)
	g.GET("/users/:id/streak", h.GetUserStreak)
}

// GetOwnStreak returns the authenticated user's streak snapshot
func (h *StreakHandler) GetOwnStreak(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return h.respond(c, currentUserID)
}

// GetUserStreak returns another user's streak snapshot
func (h *StreakHandler) GetUserStreak(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return h.respond(c, uint(id))
}

func (h *StreakHandler) respond(c echo.Context, userID uint) error {
	snapshot, err := h.calculator.Compute(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": snapshot})
}
