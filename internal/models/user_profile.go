package models

import "gorm.io/gorm"

// UserProfile holds the portal-side details for a user. Identity itself lives
// with the hosted auth provider; UserID is the subject id from its tokens.
type UserProfile struct {
	gorm.Model

	UserID       string `gorm:"not null;uniqueIndex"`
	DisplayName  string
	ContactEmail string
	Company      string
}
