package services

import (
	"estudio/internal/models"
	"estudio/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	SetUserRole(email string, role models.UserRole) (*models.User, error)
}

// ClientServicer defines the contract for client-related business logic.
type ClientServicer interface {
	CreateClient(name, lastName, email, phone string) (*models.Client, error)
	GetClients(page pagination.PageRequest) (*pagination.PageResponse[models.Client], error)
	GetClientByID(clientID uint) (*models.Client, error)
	UpdateClient(clientID uint, name, lastName, email, phone string) (*models.Client, error)
	DeleteClient(clientID uint) error
}

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	DisplayID          string
	Name               string
	Description        string
	StartDate          string
	EndDate            string
	Location           string
	Status             models.ProjectStatus
	MainClientID       *uint
	SecondaryClientIDs []uint
}

// ProjectServicer defines the contract for project-related business logic.
type ProjectServicer interface {
	CreateProject(input ProjectInput) (*models.Project, error)
	GetProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	GetProjectByID(projectID uint) (*models.Project, error)
	UpdateProject(projectID uint, input ProjectInput) (*models.Project, error)
	DeleteProject(projectID uint) error
}

// StatementServicer defines the contract for statement ingestion and lookup.
type StatementServicer interface {
	IngestStatement(fileName, xmlContent, uploadedBy string) (*models.BankStatement, error)
	GetStatements(page pagination.PageRequest) (*pagination.PageResponse[models.BankStatement], error)
	GetStatementByKey(key string) (*models.BankStatement, error)
	GetUploads(page pagination.PageRequest) (*pagination.PageResponse[models.Upload], error)
}

// AllocationServicer maintains the mapping from transaction id to allocation.
// Absence of an allocation means the transaction is unassigned.
type AllocationServicer interface {
	SetSingle(txnID string, projectID *uint) (*models.Allocation, error)
	SetProrated(txnID string, splits []models.ProratedSplit) (*models.Allocation, error)
	GetAllocation(txnID string) (*models.Allocation, error)
	SeedSplits(txnID string) ([]models.ProratedSplit, error)
}
