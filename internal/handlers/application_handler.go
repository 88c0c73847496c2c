package handlers

import (
	"net/http"
	"strconv"

	"github.com/decidly/backend/internal/middleware"
	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ApplicationHandler handles HTTP requests for application containers, their
// configuration items and outcome snapshots
type ApplicationHandler struct {
	familyService *services.FamilyService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(familyService *services.FamilyService) *ApplicationHandler {
	return &ApplicationHandler{familyService: familyService}
}

// RegisterApplicationRoutes registers application-related routes
func (h *ApplicationHandler) RegisterApplicationRoutes(g *echo.Group) {
	g.POST("/applications", h.CreateApplication)
	g.GET("/applications", h.GetApplications)
	g.GET("/applications/:id", h.GetApplication)
	g.DELETE("/applications/:id", h.DeleteApplication)
	g.PUT("/applications/:id/items", h.ReplaceItems)
	g.GET("/applications/:id/items", h.GetItems)
	g.POST("/applications/:id/results", h.AppendResult)
	g.GET("/applications/:id/results", h.GetResults)
}

// ownedApplication parses the :id param and verifies the caller owns the
// application. Every application-scoped route funnels through here, so the
// engines below never need their own ownership checks.
func (h *ApplicationHandler) ownedApplication(c echo.Context) (*models.Application, error) {
	userID, _ := middleware.CurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid application ID")
	}
	app, err := h.familyService.GetApplication(userID, uint(id))
	if err != nil {
		return nil, httpError(err)
	}
	return app, nil
}

// CreateApplication creates a new application container
func (h *ApplicationHandler) CreateApplication(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	var req models.CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.familyService.CreateApplication(userID, req.Kind, req.Title)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, app)
}

// GetApplications lists the caller's applications
func (h *ApplicationHandler) GetApplications(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	apps, err := h.familyService.GetApplications(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, apps)
}

// GetApplication retrieves one application owned by the caller
func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	app, err := h.ownedApplication(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// DeleteApplication deletes an application and everything scoped to it
func (h *ApplicationHandler) DeleteApplication(c echo.Context) error {
	app, err := h.ownedApplication(c)
	if err != nil {
		return err
	}
	userID, _ := middleware.CurrentUserID(c)
	if err := h.familyService.DeleteApplication(userID, app.ID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceItems replaces the application's full item list
func (h *ApplicationHandler) ReplaceItems(c echo.Context) error {
	app, err := h.ownedApplication(c)
	if err != nil {
		return err
	}

	var req models.ReplaceItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items, err := h.familyService.ReplaceItems(app.ID, req.Items)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItems lists the application's items in stored order
func (h *ApplicationHandler) GetItems(c echo.Context) error {
	app, err := h.ownedApplication(c)
	if err != nil {
		return err
	}
	items, err := h.familyService.GetItems(app.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// AppendResult records an outcome snapshot
func (h *ApplicationHandler) AppendResult(c echo.Context) error {
	app, err := h.ownedApplication(c)
	if err != nil {
		return err
	}

	var req models.AppendResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.familyService.AppendResult(c.Request().Context(), app.ID, req.Outcome, req.Detail)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// GetResults retrieves the newest outcome snapshots, capped by ?limit=
func (h *ApplicationHandler) GetResults(c echo.Context) error {
	app, err := h.ownedApplication(c)
	if err != nil {
		return err
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	results, err := h.familyService.RecentResults(c.Request().Context(), app.ID, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, results)
}
