package handlers

import (
	"net/http"
	"strconv"

	"github.com/decidly/backend/internal/middleware"
	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FamilyHandler handles HTTP requests for family tree members, relations and
// the derived tree view
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// RegisterFamilyRoutes registers family graph routes
func (h *FamilyHandler) RegisterFamilyRoutes(g *echo.Group) {
	g.POST("/applications/:id/members", h.CreateMember)
	g.PUT("/applications/:id/members/:memberId", h.UpdateMember)
	g.DELETE("/applications/:id/members/:memberId", h.DeleteMember)
	g.POST("/applications/:id/relations", h.CreateRelation)
	g.DELETE("/applications/:id/relations/:relationId", h.DeleteRelation)
	g.GET("/applications/:id/tree", h.GetFamilyTree)
}

// ownedApplicationID verifies the caller owns the application in :id and
// returns its id.
func (h *FamilyHandler) ownedApplicationID(c echo.Context) (uint, error) {
	userID, _ := middleware.CurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid application ID")
	}
	app, err := h.familyService.GetApplication(userID, uint(id))
	if err != nil {
		return 0, httpError(err)
	}
	return app.ID, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// CreateMember adds a member to the family tree
func (h *FamilyHandler) CreateMember(c echo.Context) error {
	appID, err := h.ownedApplicationID(c)
	if err != nil {
		return err
	}

	var req models.CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.familyService.CreateMember(appID, req.Nickname, req.Gender, req.AvatarType, req.IsSelf)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, member)
}

// UpdateMember edits a member of the family tree
func (h *FamilyHandler) UpdateMember(c echo.Context) error {
	appID, err := h.ownedApplicationID(c)
	if err != nil {
		return err
	}
	memberID, err := pathID(c, "memberId")
	if err != nil {
		return err
	}

	var req models.UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.familyService.UpdateMember(appID, memberID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, member)
}

// DeleteMember removes a member and its relations
func (h *FamilyHandler) DeleteMember(c echo.Context) error {
	appID, err := h.ownedApplicationID(c)
	if err != nil {
		return err
	}
	memberID, err := pathID(c, "memberId")
	if err != nil {
		return err
	}

	if err := h.familyService.DeleteMember(appID, memberID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateRelation adds a typed edge between two members
func (h *FamilyHandler) CreateRelation(c echo.Context) error {
	appID, err := h.ownedApplicationID(c)
	if err != nil {
		return err
	}

	var req models.CreateRelationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	relation, err := h.familyService.CreateRelation(appID, req.FromMemberID, req.ToMemberID, req.Type)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, relation)
}

// DeleteRelation removes a relation
func (h *FamilyHandler) DeleteRelation(c echo.Context) error {
	appID, err := h.ownedApplicationID(c)
	if err != nil {
		return err
	}
	relationID, err := pathID(c, "relationId")
	if err != nil {
		return err
	}

	if err := h.familyService.DeleteRelation(appID, relationID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFamilyTree returns the derived tree view of the application
func (h *FamilyHandler) GetFamilyTree(c echo.Context) error {
	appID, err := h.ownedApplicationID(c)
	if err != nil {
		return err
	}

	tree, err := h.familyService.FamilyTree(appID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tree)
}
