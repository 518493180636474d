package handlers

import (
	"net/http"

	"github.com/emberloop/backend/internal/models"
	"github.com/emberloop/backend/internal/repositories"
	"github.com/emberloop/backend/internal/toggle"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles reaction toggle HTTP requests
type ReactionHandler struct {
	toggler   *toggle.ReactionToggler
	reactions repositories.ReactionRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(toggler *toggle.ReactionToggler, reactions repositories.ReactionRepository) *ReactionHandler {
	return &ReactionHandler{toggler: toggler, reactions: reactions}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/reactions", h.ToggleReaction)
	g.GET("/posts/:post_id/reactions/count", h.GetReactionsCount)
	g.GET("/posts/:post_id/reactions/status", h.GetReactionStatus)
}

// ToggleReaction flips the authenticated user's reaction on a post and
// returns the authoritative resulting state.
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("post_id")

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.toggler.Toggle(c.Request().Context(), currentUserID, postID, req.Type)
	if err != nil {
		return toggleErrorResponse(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"state":   state,
			"reacted": state == toggle.StateOn,
		},
	})
}

// GetReactionsCount retrieves the total number of reactions for a post
func (h *ReactionHandler) GetReactionsCount(c echo.Context) error {
	postID := c.Param("post_id")

	count, err := h.reactions.GetReactionsCount(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "reactions_count": count})
}

// GetReactionStatus checks whether the authenticated user has reacted to a post
func (h *ReactionHandler) GetReactionStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	reacted, err := h.reactions.HasAnyReaction(c.Request().Context(), []string{postID}, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "user_id": currentUserID, "has_reacted": reacted[postID]})
}
