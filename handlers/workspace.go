package handlers

import (
	"errors"
	"net/http"

	"hively/models"
	"hively/services/workspace"
	"hively/utils"

	"github.com/gin-gonic/gin"
)

// WorkspaceHandler exposes the workspace catalog over HTTP.
type WorkspaceHandler struct {
	Svc workspace.WorkspaceService
}

// NewWorkspaceHandler builds a WorkspaceHandler.
func NewWorkspaceHandler(svc workspace.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{Svc: svc}
}

// ListWorkspaces returns non-archived listings matching the query filters.
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	var filter models.WorkspaceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	out, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list workspaces", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": out})
}

// GetWorkspace returns one listing by ID.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	ws, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "workspace not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch workspace", err.Error())
		return
	}
	c.JSON(http.StatusOK, ws)
}

// CreateWorkspace registers a new listing owned by the calling administrator.
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	var input models.WorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ownerID, _ := c.Get("userID")
	owner, _ := ownerID.(string)
	ws, err := h.Svc.Create(c.Request.Context(), owner, input)
	if err != nil {
		if errors.Is(err, workspace.ErrBadPriceUnit) {
			utils.JSONError(c, http.StatusBadRequest, "invalid workspace", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create workspace", err.Error())
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// UpdateWorkspace replaces a listing's mutable fields.
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	var input models.WorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ws, err := h.Svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, workspace.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "workspace not found", "")
		case errors.Is(err, workspace.ErrBadPriceUnit):
			utils.JSONError(c, http.StatusBadRequest, "invalid workspace", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update workspace", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, ws)
}

// ArchiveWorkspace soft-deletes a listing.
func (h *WorkspaceHandler) ArchiveWorkspace(c *gin.Context) {
	if err := h.Svc.Archive(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "workspace not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to archive workspace", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}
