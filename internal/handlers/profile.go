package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/models"
	"github.com/quickcut-dev/quickcut/internal/utils"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	DisplayName  string `json:"display_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Company      string `json:"company"`
}

type ProfileResponse struct {
	DisplayName  string `json:"display_name"`
	ContactEmail string `json:"contact_email"`
	Company      string `json:"company"`
}

func Me(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.UserProfile

	err = db.DB.Where("user_id = ?", user.ID).First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"user": user, "profile": nil})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user, "profile": ProfileResponse{
		DisplayName:  profile.DisplayName,
		ContactEmail: profile.ContactEmail,
		Company:      profile.Company,
	}})
}

func UpdateMe(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.UserProfile

	err = db.DB.Where("user_id = ?", user.ID).First(&profile).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{
			UserID:       user.ID,
			DisplayName:  strings.TrimSpace(body.DisplayName),
			ContactEmail: strings.TrimSpace(body.ContactEmail),
			Company:      strings.TrimSpace(body.Company),
		}

		if err := db.DB.Create(&profile).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else {
		updates := make(map[string]interface{})

		if name := strings.TrimSpace(body.DisplayName); name != "" {
			updates["display_name"] = name
		}

		if email := strings.TrimSpace(body.ContactEmail); email != "" {
			updates["contact_email"] = email
		}

		if company := strings.TrimSpace(body.Company); company != "" {
			updates["company"] = company
		}

		if len(updates) > 0 {
			if err := db.DB.Model(&profile).Updates(updates).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user, "profile": ProfileResponse{
		DisplayName:  profile.DisplayName,
		ContactEmail: profile.ContactEmail,
		Company:      profile.Company,
	}})
}
