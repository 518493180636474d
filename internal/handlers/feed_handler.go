package handlers

import (
	"errors"
	"net/http"

	"github.com/emberloop/backend/internal/feed"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *feed.Service
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// feedQuery defines the accepted feed query parameters
type feedQuery struct {
	Scope      string `query:"scope" validate:"omitempty,oneof=self following public"`
	Timeframe  string `query:"timeframe" validate:"omitempty,oneof=today week upcoming"`
	Visibility string `query:"visibility" validate:"omitempty,oneof=all mine"`
	Sort       string `query:"sort" validate:"omitempty,oneof=recent"`
	Cursor     string `query:"cursor"`
}

// GetFeed returns one page of the viewer's merged feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var q feedQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if q.Scope == "" {
		q.Scope = string(feed.ScopeFollowing)
	}
	if q.Timeframe == "" {
		q.Timeframe = string(feed.TimeframeWeek)
	}
	if q.Visibility == "" {
		q.Visibility = string(feed.VisibilityAll)
	}
	if q.Sort == "" {
		q.Sort = "recent"
	}

	page, err := h.feedService.GetFeed(c.Request().Context(), currentUserID, feed.Query{
		ScopeMode:  feed.ScopeMode(q.Scope),
		Timeframe:  feed.Timeframe(q.Timeframe),
		Visibility: feed.Visibility(q.Visibility),
		Sort:       q.Sort,
		Cursor:     q.Cursor,
	})
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrInvalidCursor):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid cursor")
		case errors.Is(err, feed.ErrSourceUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Feed temporarily unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"items": page.Items,
		},
		"meta": echo.Map{
			"nextCursor": page.NextCursor,
			"degraded":   page.Degraded,
		},
	})
}
