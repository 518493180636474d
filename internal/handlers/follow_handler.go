package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emberloop/backend/internal/toggle"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow toggle HTTP requests
type FollowHandler struct {
	toggler *toggle.FollowToggler
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(toggler *toggle.FollowToggler) *FollowHandler {
	return &FollowHandler{toggler: toggler}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the follow edge toward the target user and returns the
// authoritative resulting state.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	state, err := h.toggler.Toggle(c.Request().Context(), currentUserID, uint(targetID))
	if err != nil {
		return toggleErrorResponse(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"state":     state,
			"following": state == toggle.StateOn,
		},
	})
}

// toggleErrorResponse maps toggle errors to HTTP status codes
func toggleErrorResponse(err error) error {
	switch {
	case errors.Is(err, toggle.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, toggle.ErrInvalidTarget):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, toggle.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many reactions, try again later")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
