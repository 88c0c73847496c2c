package handlers

import (
	"net/http"
	"strconv"

	"github.com/decidly/backend/internal/middleware"
	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	socialService *services.SocialService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(socialService *services.SocialService) *FriendshipHandler {
	return &FriendshipHandler{socialService: socialService}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/received", h.GetReceivedFriendRequests)
	g.GET("/friends/requests/sent", h.GetSentFriendRequests)
	g.PUT("/friends/request/:id/accept", h.AcceptFriendRequest)
	g.DELETE("/friends/request/:id", h.DeclineFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.DeleteFriend) // Unfriend
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	friendRequest, err := h.socialService.SendFriendRequest(userID, req.ReceiverID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, friendRequest)
}

// GetReceivedFriendRequests retrieves pending friend requests addressed to
// the authenticated user
func (h *FriendshipHandler) GetReceivedFriendRequests(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	requests, err := h.socialService.ReceivedFriendRequests(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// GetSentFriendRequests retrieves pending friend requests the authenticated
// user has sent
func (h *FriendshipHandler) GetSentFriendRequests(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	requests, err := h.socialService.SentFriendRequests(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// AcceptFriendRequest accepts a pending friend request
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	friendRequest, err := h.socialService.AcceptFriendRequest(userID, uint(requestID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, friendRequest)
}

// DeclineFriendRequest declines (removes) a pending friend request
func (h *FriendshipHandler) DeclineFriendRequest(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	if err := h.socialService.DeclineFriendRequest(userID, uint(requestID)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	friends, err := h.socialService.GetFriends(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, friends)
}

// DeleteFriend handles unfriending
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)
	friendUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	if err := h.socialService.DeleteFriend(userID, uint(friendUserID)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
