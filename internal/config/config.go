package config

import (
	"fmt"
	"os"
)

// MondayColumns holds the board column ids the webhook reconciler recognizes.
// Each id identifies one column on the production board; the mapping from id
// to project field is fixed at startup.
type MondayColumns struct {
	Name       string
	Status     string
	Priority   string
	File       string
	DueDate    string
	Visibility string
	Feedback   string
}

// Config holds all configuration values from environment.
type Config struct {
	Port        string
	DatabaseURL string

	// Monday.com board integration
	MondayAPIURL   string
	MondayAPIToken string
	MondayBoardID  string
	Columns        MondayColumns
}

// LoadConfig loads configuration from environment variables. Missing store
// credentials or board column ids are returned as errors so the caller can
// refuse to start.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           os.Getenv("PORT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MondayAPIURL:   os.Getenv("MONDAY_API_URL"),
		MondayAPIToken: os.Getenv("MONDAY_API_TOKEN"),
		MondayBoardID:  os.Getenv("MONDAY_BOARD_ID"),
		Columns: MondayColumns{
			Name:       os.Getenv("MONDAY_NAME_COLUMN_ID"),
			Status:     os.Getenv("MONDAY_STATUS_COLUMN_ID"),
			Priority:   os.Getenv("MONDAY_PRIORITY_COLUMN_ID"),
			File:       os.Getenv("MONDAY_FILE_COLUMN_ID"),
			DueDate:    os.Getenv("MONDAY_DUE_DATE_COLUMN_ID"),
			Visibility: os.Getenv("MONDAY_VISIBILITY_COLUMN_ID"),
			Feedback:   os.Getenv("MONDAY_FEEDBACK_COLUMN_ID"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.MondayAPIURL == "" {
		cfg.MondayAPIURL = "https://api.monday.com/v2"
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	required := []struct {
		name  string
		value string
	}{
		{"MONDAY_NAME_COLUMN_ID", cfg.Columns.Name},
		{"MONDAY_STATUS_COLUMN_ID", cfg.Columns.Status},
		{"MONDAY_PRIORITY_COLUMN_ID", cfg.Columns.Priority},
		{"MONDAY_FILE_COLUMN_ID", cfg.Columns.File},
		{"MONDAY_DUE_DATE_COLUMN_ID", cfg.Columns.DueDate},
		{"MONDAY_VISIBILITY_COLUMN_ID", cfg.Columns.Visibility},
		{"MONDAY_FEEDBACK_COLUMN_ID", cfg.Columns.Feedback},
	}
	for _, req := range required {
		if req.value == "" {
			return nil, fmt.Errorf("%s is not set", req.name)
		}
	}

	return cfg, nil
}
