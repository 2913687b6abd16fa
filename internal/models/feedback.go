package models

import "gorm.io/gorm"

// Feedback is a revision note a client leaves on one of their projects.
type Feedback struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	UserID    string `gorm:"not null;index"`
	Message   string `gorm:"not null"`

	// Id of the mirrored note on the external board, when the mirror succeeded.
	MondayUpdateID *string

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
