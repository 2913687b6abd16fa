package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/models"
	"github.com/quickcut-dev/quickcut/internal/services"
	"github.com/quickcut-dev/quickcut/internal/utils"
	"gorm.io/gorm"
)

type CreateFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

type FeedbackResponse struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	Message   string `json:"message"`
	Mirrored  bool   `json:"mirrored"`
	CreatedAt string `json:"created_at"`
}

func toFeedbackResponse(feedback models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        feedback.ID,
		ProjectID: feedback.ProjectID,
		Message:   feedback.Message,
		Mirrored:  feedback.MondayUpdateID != nil,
		CreatedAt: feedback.CreatedAt.Format(time.RFC3339),
	}
}

func CreateFeedback(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateFeedbackRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND user_id = ?", projectID, user.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	feedback := models.Feedback{
		ProjectID: project.ID,
		UserID:    user.ID,
		Message:   body.Message,
	}

	// Mirror the note onto the board item when one exists. The local row is
	// the source of truth either way.
	if project.MondayItemID != nil {
		feedback.MondayUpdateID = services.TryCreateBoardNote(ctx.Request.Context(), *project.MondayItemID, body.Message)
	}

	if err := db.DB.Create(&feedback).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, toFeedbackResponse(feedback))
}

func ListFeedback(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	var notes []models.Feedback

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at DESC").Find(&notes).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	response := make([]FeedbackResponse, 0, len(notes))

	for _, note := range notes {
		response = append(response, toFeedbackResponse(note))
	}

	ctx.JSON(http.StatusOK, response)
}
