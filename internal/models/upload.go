package models

// Upload records one ingested XML file: who uploaded it and when.
type Upload struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	UploadedBy string `gorm:"not null" json:"uploaded_by"`
}
