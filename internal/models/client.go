package models

// Client represents a client of the firm
type Client struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	LastName string `gorm:"not null" json:"last_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}
