package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/models"
	"github.com/quickcut-dev/quickcut/internal/services"
	"github.com/quickcut-dev/quickcut/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name" binding:"required"`
	MondayItemID string `json:"monday_item_id"`
	Priority     string `json:"priority"`
	DueDate      string `json:"due_date"`
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name"`
}

type ProjectResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"due_date"`
	FileURL      string  `json:"file_url,omitempty"`
	FileName     string  `json:"file_name,omitempty"`
	FileVisible  bool    `json:"file_visible"`
	MondayItemID *string `json:"monday_item_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// toProjectResponse gates the deliverable: until an editor flips the
// visibility column on the board, the owner never sees the file fields.
func toProjectResponse(project models.Project) ProjectResponse {
	response := ProjectResponse{
		ID:           project.ID,
		Name:         project.Name,
		Status:       project.Status,
		Priority:     project.Priority,
		FileVisible:  project.FileVisible,
		MondayItemID: project.MondayItemID,
		CreatedAt:    project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    project.UpdatedAt.Format(time.RFC3339),
	}

	if project.DueDate != nil {
		due := project.DueDate.Format("2006-01-02")
		response.DueDate = &due
	}

	if project.FileVisible {
		response.FileURL = project.FileURL
		response.FileName = project.FileName
	}

	return response
}

func parseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}

	return nil
}

func CreateProject(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.UserID != "" && body.UserID != user.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "user_id does not match the authenticated user"})
		return
	}

	priority := strings.TrimSpace(body.Priority)

	if priority == "" {
		priority = "Medium"
	}

	mondayItemID := strings.TrimSpace(body.MondayItemID)

	if mondayItemID == "" {
		mondayItemID = services.TryCreateBoardItem(ctx.Request.Context(), body.Name)
	}

	project := models.Project{
		UserID:   user.ID,
		Name:     body.Name,
		Status:   "New",
		Priority: priority,
		DueDate:  parseDueDate(body.DueDate),
		FileURL:  body.FileURL,
		FileName: body.FileName,
	}

	if mondayItemID != "" {
		project.MondayItemID = &mondayItemID
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	BroadcastProjectRefresh(user.ID, project.ID, nil)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
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

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
