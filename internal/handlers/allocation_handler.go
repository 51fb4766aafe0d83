package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/services"
)

// AllocationHandler handles transaction-allocation requests.
type AllocationHandler struct {
	allocationService services.AllocationServicer
	projectService    services.ProjectServicer
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationService services.AllocationServicer, projectService services.ProjectServicer) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService, projectService: projectService}
}

// SetAllocationRequest represents the request payload for a single allocation.
// A null project_id clears the assignment.
type SetAllocationRequest struct {
	ProjectID *uint `json:"project_id"`
}

// SplitRequest represents one split row of a prorated allocation
type SplitRequest struct {
	SplitID     string  `json:"split_id"`
	Description string  `json:"description" binding:"max=500"`
	ProjectID   *uint   `json:"project_id"`
	Amount      float64 `json:"amount"`
}

// ProrateRequest represents the request payload for a prorated allocation
type ProrateRequest struct {
	Splits []SplitRequest `json:"splits" binding:"required"`
}

// AllocationResponse represents an allocation together with its rendered
// display label.
type AllocationResponse struct {
	Allocation *models.Allocation `json:"allocation"`
	Display    string             `json:"display"`
}

// GetAllocation returns the allocation of a transaction, or an unassigned
// placeholder when none exists.
// @Summary     Get a transaction's allocation
// @Description Get the allocation of a transaction with its display label
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       txnId path string true "Transaction ID"
// @Success     200 {object} AllocationResponse "Allocation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/{txnId}/allocation [get]
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	allocation, err := h.allocationService.GetAllocation(c.Param("txnId"))
	if err != nil && !errors.Is(err, apperrors.ErrAllocationNotFound) {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AllocationResponse{
		Allocation: allocation,
		Display:    services.DisplayAllocation(allocation, h.referencedProjects(allocation)),
	})
}

// SetAllocation assigns a transaction to a single project.
// @Summary     Set a single allocation
// @Description Assign the whole transaction to one project, replacing any existing allocation
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       txnId path string true "Transaction ID"
// @Param       request body SetAllocationRequest true "Target project (null clears the assignment)"
// @Success     200 {object} AllocationResponse "Allocation saved"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{txnId}/allocation [put]
func (h *AllocationHandler) SetAllocation(c *gin.Context) {
	var req SetAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	allocation, err := h.allocationService.SetSingle(c.Param("txnId"), req.ProjectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AllocationResponse{
		Allocation: allocation,
		Display:    services.DisplayAllocation(allocation, h.referencedProjects(allocation)),
	})
}

// Prorate replaces a transaction's allocation with a split list.
// @Summary     Set a prorated allocation
// @Description Split the transaction across projects; the split amounts must add up to the transaction amount
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       txnId path string true "Transaction ID"
// @Param       request body ProrateRequest true "Split list"
// @Success     200 {object} AllocationResponse "Allocation saved"
// @Failure     400 {object} ErrorResponse "Unbalanced or empty split list"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{txnId}/prorate [put]
func (h *AllocationHandler) Prorate(c *gin.Context) {
	var req ProrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	splits := make([]models.ProratedSplit, len(req.Splits))
	for i, s := range req.Splits {
		splits[i] = models.ProratedSplit{
			SplitID:     s.SplitID,
			Description: s.Description,
			ProjectID:   s.ProjectID,
			Amount:      s.Amount,
		}
	}

	allocation, err := h.allocationService.SetProrated(c.Param("txnId"), splits)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AllocationResponse{
		Allocation: allocation,
		Display:    services.DisplayAllocation(allocation, nil),
	})
}

// GetSplits returns the seed split list for the prorating editor.
// @Summary     Seed the prorating editor
// @Description Get the starting split list: stored splits for a prorated allocation, otherwise one full-amount split
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       txnId path string true "Transaction ID"
// @Success     200 {object} map[string][]models.ProratedSplit "Seed splits"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{txnId}/splits [get]
func (h *AllocationHandler) GetSplits(c *gin.Context) {
	splits, err := h.allocationService.SeedSplits(c.Param("txnId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"splits": splits})
}

// referencedProjects loads the project a single allocation points to, so the
// display label can resolve its display id. A dangling reference yields an
// empty list and renders as unassigned.
func (h *AllocationHandler) referencedProjects(allocation *models.Allocation) []models.Project {
	if allocation == nil || allocation.Kind != models.AllocationKindSingle || allocation.ProjectID == nil {
		return nil
	}
	project, err := h.projectService.GetProjectByID(*allocation.ProjectID)
	if err != nil {
		return nil
	}
	return []models.Project{*project}
}
