package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/pagination"
	"estudio/internal/validator"
)

// clientService handles client-related business logic.
type clientService struct {
	db *gorm.DB
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB) ClientServicer {
	return &clientService{db: db}
}

// CreateClient creates a new client. Email is optional but must match a basic
// address pattern when present.
func (s *clientService) CreateClient(name, lastName, email, phone string) (*models.Client, error) {
	if name == "" || lastName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and last name are required")
	}
	if email != "" && !validator.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	client := &models.Client{
		Name:     name,
		LastName: lastName,
		Email:    email,
		Phone:    phone,
	}

	if err := s.db.Create(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return client, nil
}

// GetClients retrieves a paginated list of clients ordered by last name.
func (s *clientService) GetClients(page pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
	page.Defaults()

	base := s.db.Model(&models.Client{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var clients []models.Client
	if err := base.Scopes(pagination.Paginate(page)).
		Order("last_name ASC, name ASC").
		Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(clients, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetClientByID retrieves a client by ID
func (s *clientService) GetClientByID(clientID uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &client, nil
}

// UpdateClient updates an existing client's fields.
func (s *clientService) UpdateClient(clientID uint, name, lastName, email, phone string) (*models.Client, error) {
	client, err := s.GetClientByID(clientID)
	if err != nil {
		return nil, err
	}

	if name == "" || lastName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and last name are required")
	}
	if email != "" && !validator.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	client.Name = name
	client.LastName = lastName
	client.Email = email
	client.Phone = phone

	if err := s.db.Save(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return client, nil
}

// DeleteClient removes a client. Projects referencing it keep their
// (now dangling) client id.
func (s *clientService) DeleteClient(clientID uint) error {
	client, err := s.GetClientByID(clientID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(client).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
