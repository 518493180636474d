package handlers

import (
	"net/http"
	"strconv"

	"github.com/emberloop/backend/internal/models"
	"github.com/emberloop/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles content creation and lookup HTTP requests
type PostHandler struct {
	groupPosts repositories.GroupPostRepository
	dailyPosts repositories.DailyPostRepository
	groups     repositories.GroupRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	groupPosts repositories.GroupPostRepository,
	dailyPosts repositories.DailyPostRepository,
	groups repositories.GroupRepository,
) *PostHandler {
	return &PostHandler{groupPosts: groupPosts, dailyPosts: dailyPosts, groups: groups}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts/daily", h.CreateDailyPost)
	g.GET("/posts/daily", h.ListOwnDailyPosts)
	g.POST("/posts/group", h.CreateGroupPost)
	g.POST("/groups", h.CreateGroup)
	g.GET("/posts/:post_id", h.GetPost)
}

// CreateDailyPost creates a daily check-in post for the authenticated user
func (h *PostHandler) CreateDailyPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateDailyPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.DailyPost{
		UserID: currentUserID,
		Body:   req.Body,
	}
	if err := h.dailyPosts.CreateDailyPost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// ListOwnDailyPosts returns the authenticated user's daily posts
func (h *PostHandler) ListOwnDailyPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, err := h.dailyPosts.ListByUser(c.Request().Context(), currentUserID, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// CreateGroupPost creates a post inside a group
func (h *PostHandler) CreateGroupPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	groups, err := h.groups.GetGroupsByIDs(c.Request().Context(), []string{req.GroupID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, ok := groups[req.GroupID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}

	post := &models.GroupPost{
		AuthorID: currentUserID,
		GroupID:  req.GroupID,
		Body:     req.Body,
	}
	if err := h.groupPosts.CreateGroupPost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// CreateGroup creates a new topic group
func (h *PostHandler) CreateGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group := &models.Group{Name: req.Name}
	if err := h.groups.CreateGroup(c.Request().Context(), group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": group})
}

// GetPost retrieves a single post of either kind. Numeric ids are daily
// posts, everything else is looked up as a group post.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("post_id")

	if id, err := strconv.ParseUint(postID, 10, 32); err == nil {
		post, err := h.dailyPosts.GetDailyPostByID(c.Request().Context(), uint(id))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
	}

	post, err := h.groupPosts.GetGroupPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}
