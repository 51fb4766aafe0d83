package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/pagination"
)

// projectService handles project-related business logic.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// validateInput normalizes and checks the writable project fields.
// Display IDs are uppercased and must be exactly 3 characters; names must be
// at least 5 characters; an empty status defaults to Propuesta.
func validateInput(input *ProjectInput) error {
	input.DisplayID = strings.ToUpper(strings.TrimSpace(input.DisplayID))
	if utf8.RuneCountInString(input.DisplayID) != 3 {
		return apperrors.ErrInvalidDisplayID
	}
	if utf8.RuneCountInString(input.Name) < 5 {
		return apperrors.ErrProjectNameTooShort
	}
	if input.Status == "" {
		input.Status = models.ProjectStatusPropuesta
	}
	if !models.IsValidProjectStatus(input.Status) {
		return apperrors.ErrInvalidStatus
	}
	return nil
}

// CreateProject creates a new project.
func (s *projectService) CreateProject(input ProjectInput) (*models.Project, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Project{}).Where("display_id = ?", input.DisplayID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateDisplayID
	}

	project := &models.Project{
		DisplayID:    input.DisplayID,
		Name:         input.Name,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Location:     input.Location,
		Status:       input.Status,
		MainClientID: input.MainClientID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.replaceSecondaryClients(tx, project, input.SecondaryClientIDs)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// replaceSecondaryClients sets the project's secondary client association to
// the clients found among the given ids. Unknown ids are skipped; client
// references are not strictly enforced anywhere in the model.
func (s *projectService) replaceSecondaryClients(tx *gorm.DB, project *models.Project, clientIDs []uint) error {
	if clientIDs == nil {
		return nil
	}

	var clients []models.Client
	if len(clientIDs) > 0 {
		if err := tx.Where("id IN ?", clientIDs).Find(&clients).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := tx.Model(project).Association("SecondaryClients").Replace(clients); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetProjects retrieves a paginated list of projects ordered by display ID.
func (s *projectService) GetProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	page.Defaults()

	base := s.db.Model(&models.Project{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var projects []models.Project
	if err := base.Scopes(pagination.Paginate(page)).
		Order("display_id ASC").
		Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(projects, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProjectByID retrieves a project with its client associations.
func (s *projectService) GetProjectByID(projectID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("MainClient").Preload("SecondaryClients").
		First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

// UpdateProject updates an existing project.
func (s *projectService) UpdateProject(projectID uint, input ProjectInput) (*models.Project, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	if input.DisplayID != project.DisplayID {
		var count int64
		s.db.Model(&models.Project{}).
			Where("display_id = ? AND id <> ?", input.DisplayID, projectID).
			Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateDisplayID
		}
	}

	project.DisplayID = input.DisplayID
	project.Name = input.Name
	project.Description = input.Description
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Location = input.Location
	project.Status = input.Status
	project.MainClientID = input.MainClientID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.replaceSecondaryClients(tx, project, input.SecondaryClientIDs)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project. Allocations pointing at it are left in
// place and render as unassigned; they are never auto-repaired.
func (s *projectService) DeleteProject(projectID uint) error {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(project).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
