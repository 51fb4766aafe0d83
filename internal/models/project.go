package models

// ProjectStatus represents a lifecycle stage of a project
type ProjectStatus string

// Project lifecycle stages, in order, plus the terminal "Perdido" state.
const (
	ProjectStatusPropuesta     ProjectStatus = "Propuesta"
	ProjectStatusLevantamiento ProjectStatus = "Levantamiento"
	ProjectStatusAnteproyecto  ProjectStatus = "Anteproyecto"
	ProjectStatusProyecto      ProjectStatus = "Proyecto"
	ProjectStatusLicitacion    ProjectStatus = "Licitación"
	ProjectStatusConstruccion  ProjectStatus = "Construcción"
	ProjectStatusTerminado     ProjectStatus = "Terminado"
	ProjectStatusPerdido       ProjectStatus = "Perdido"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPropuesta,
	ProjectStatusLevantamiento,
	ProjectStatusAnteproyecto,
	ProjectStatusProyecto,
	ProjectStatusLicitacion,
	ProjectStatusConstruccion,
	ProjectStatusTerminado,
	ProjectStatusPerdido,
}

// IsValidProjectStatus reports whether s is one of the known lifecycle stages.
func IsValidProjectStatus(s ProjectStatus) bool {
	for _, status := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Project represents an architecture project
type Project struct {
	Base
	DisplayID   string        `gorm:"size:3;not null;uniqueIndex" json:"display_id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Location    string        `json:"location"`
	Status      ProjectStatus `gorm:"not null;default:'Propuesta'" json:"status"`

	MainClientID *uint `json:"main_client_id,omitempty"`

	// Relationships
	MainClient       *Client  `gorm:"foreignKey:MainClientID" json:"main_client,omitempty"`
	SecondaryClients []Client `gorm:"many2many:project_secondary_clients" json:"secondary_clients,omitempty"`
}
