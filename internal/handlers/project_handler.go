package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/pagination"
	"estudio/internal/services"
)

// ProjectHandler handles project-related requests.
type ProjectHandler struct {
	projectService services.ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService services.ProjectServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectRequest represents the request payload for creating or updating a project
type ProjectRequest struct {
	DisplayID          string `json:"display_id" binding:"required,display_id"`
	Name               string `json:"name" binding:"required,min=5,max=200"`
	Description        string `json:"description" binding:"max=2000"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Location           string `json:"location" binding:"max=200"`
	Status             string `json:"status" binding:"omitempty,project_status"`
	MainClientID       *uint  `json:"main_client_id"`
	SecondaryClientIDs []uint `json:"secondary_client_ids"`
}

func (r *ProjectRequest) toInput() services.ProjectInput {
	return services.ProjectInput{
		DisplayID:          r.DisplayID,
		Name:               r.Name,
		Description:        r.Description,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Location:           r.Location,
		Status:             models.ProjectStatus(r.Status),
		MainClientID:       r.MainClientID,
		SecondaryClientIDs: r.SecondaryClientIDs,
	}
}

// CreateProject handles the creation of a new project
// @Summary     Create a project
// @Description Create a new project with a unique three-character display ID
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProjectRequest true "Project details"
// @Success     201 {object} models.Project "Project created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Display ID already in use"
// @Router      /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects returns a paginated list of projects with their clients.
// @Summary     List projects
// @Description List projects with their main and secondary clients
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Success     200 {object} pagination.PageResponse[models.Project] "Paginated projects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	projects, err := h.projectService.GetProjects(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns a single project by ID.
// @Summary     Get a project
// @Description Get a project by ID with its clients
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} models.Project "Project"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates an existing project.
// @Summary     Update a project
// @Description Update a project's details, status, and client links
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Param       request body ProjectRequest true "Project details"
// @Success     200 {object} models.Project "Updated project"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     409 {object} ErrorResponse "Display ID already in use"
// @Router      /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(projectID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project. Allocations referencing it are left in
// place and render as unassigned.
// @Summary     Delete a project
// @Description Delete a project by ID
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} MessageResponse "Project deleted"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.projectService.DeleteProject(projectID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
