package reconcile

import (
	"errors"
	"strconv"

	"github.com/quickcut-dev/quickcut/internal/models"
	"gorm.io/gorm"
)

// FindProject locates the project a board event refers to. The pulse id is
// matched against the stored board item id first, then against the internal
// primary key, in that order. Returns gorm.ErrRecordNotFound when neither
// strategy matches.
func FindProject(db *gorm.DB, pulseID string) (*models.Project, error) {
	var project models.Project

	err := db.Where("monday_item_id = ?", pulseID).First(&project).Error

	if err == nil {
		return &project, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Items created before the board mirror existed carry no item id; those
	// boards were set up with the internal id as the pulse id instead.
	if id, parseErr := strconv.ParseUint(pulseID, 10, 32); parseErr == nil {
		err = db.First(&project, uint(id)).Error

		if err == nil {
			return &project, nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, gorm.ErrRecordNotFound
}
