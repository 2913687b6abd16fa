package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is one editing job owned by a portal user. Rows are written by the
// portal on creation and by the webhook reconciler afterwards; the external
// board is never the system of record.
type Project struct {
	gorm.Model

	UserID   string `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Status   string `gorm:"not null;default:'New'"`
	Priority string `gorm:"not null;default:'Medium'"`
	DueDate  *time.Time

	// Completed deliverable. FileVisible gates whether the owner may see it.
	FileURL     string
	FileName    string
	FileVisible bool `gorm:"not null;default:false"`

	// Id of the mirrored item on the external board, when one exists.
	MondayItemID *string `gorm:"uniqueIndex"`

	// Relationships
	Feedback []Feedback `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
