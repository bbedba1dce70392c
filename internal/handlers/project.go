package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamseed/streamseed-api/internal/dto"
	"github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/services"
	"github.com/streamseed/streamseed-api/internal/utils"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents the project creation request body
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents the partial update request body. Absent
// fields keep their stored values.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	// A fresh project has no campaigns, so the aggregate view is trivial.
	row, err := h.projectService.GetProject(userID, project.ID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*row, h.projectService.Today())})
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	rows, total, err := h.projectService.ListProjects(userID, params.Offset, params.Limit)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	today := h.projectService.Today()
	projects := make([]dto.ProjectDTO, len(rows))
	for i, row := range rows {
		projects[i] = dto.ToProjectDTO(row, today)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, ok := middleware.GetProject(c)
	if !ok {
		errors.NotFound(c, "Project not found")
		return
	}

	row, err := h.projectService.GetProject(userID, project.ID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*row, h.projectService.Today())})
}

// Update handles PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, ok := middleware.GetProject(c)
	if !ok {
		errors.NotFound(c, "Project not found")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.projectService.UpdateProject(userID, project.ID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		h.respondProjectError(c, err)
		return
	}

	row, err := h.projectService.GetProject(userID, project.ID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*row, h.projectService.Today())})
}

// Delete handles DELETE /api/projects/:id. Campaigns and their invites and
// metrics go with the project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, ok := middleware.GetProject(c)
	if !ok {
		errors.NotFound(c, "Project not found")
		return
	}

	snapshot, err := h.projectService.DeleteProject(userID, project.ID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted",
		"project": dto.ToProjectDTO(*snapshot, h.projectService.Today()),
	})
}

// ListCampaigns handles GET /api/projects/:id/campaigns
func (h *ProjectHandler) ListCampaigns(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, ok := middleware.GetProject(c)
	if !ok {
		errors.NotFound(c, "Project not found")
		return
	}

	_, campaigns, err := h.projectService.ListProjectCampaigns(userID, project.ID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns": dto.ToCampaignDTOs(campaigns, project.Name, h.projectService.Today()),
	})
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrProjectNotFound):
		errors.NotFound(c, "Project not found")
	case stderrors.Is(err, services.ErrProjectNameRequired):
		errors.BadRequest(c, "Project name is required")
	default:
		errors.InternalError(c, "")
	}
}
