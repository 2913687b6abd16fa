package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/handlers"
	"github.com/quickcut-dev/quickcut/internal/models"
	"github.com/quickcut-dev/quickcut/internal/router"
)

type meResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Profile *handlers.ProfileResponse `json:"profile"`
}

func TestMeWithoutProfile(t *testing.T) {
	setupTestDB(t)
	r := router.NewRouter()

	rec := performAuthed(t, r, http.MethodGet, "/api/me", "", "user-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got meResponse

	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got.User.ID != "user-1" || got.User.Email != "user-1@example.com" {
		t.Errorf("unexpected user: %+v", got.User)
	}

	if got.Profile != nil {
		t.Errorf("expected null profile before first edit, got %+v", got.Profile)
	}
}

func TestUpdateMeCreatesProfile(t *testing.T) {
	setupTestDB(t)
	r := router.NewRouter()

	rec := performAuthed(t, r, http.MethodPut, "/api/me", `{"display_name":"Sam","company":"Acme Films"}`, "user-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile models.UserProfile

	if err := db.DB.Where("user_id = ?", "user-1").First(&profile).Error; err != nil {
		t.Fatalf("expected a profile row: %v", err)
	}

	if profile.DisplayName != "Sam" || profile.Company != "Acme Films" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestUpdateMePartialUpdate(t *testing.T) {
	setupTestDB(t)
	r := router.NewRouter()

	seeded := models.UserProfile{UserID: "user-1", DisplayName: "Sam", ContactEmail: "sam@acme.test"}

	if err := db.DB.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	rec := performAuthed(t, r, http.MethodPut, "/api/me", `{"display_name":"Sam R."}`, "user-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var profile models.UserProfile

	if err := db.DB.Where("user_id = ?", "user-1").First(&profile).Error; err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}

	if profile.DisplayName != "Sam R." {
		t.Errorf("expected display name updated, got %q", profile.DisplayName)
	}

	if profile.ContactEmail != "sam@acme.test" {
		t.Errorf("expected untouched contact email, got %q", profile.ContactEmail)
	}
}

func TestUpdateMeRejectsBadEmail(t *testing.T) {
	setupTestDB(t)
	r := router.NewRouter()

	rec := performAuthed(t, r, http.MethodPut, "/api/me", `{"contact_email":"not-an-email"}`, "user-1")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid email, got %d", rec.Code)
	}
}

func TestUpdateMeScopedToSelf(t *testing.T) {
	setupTestDB(t)
	r := router.NewRouter()

	other := models.UserProfile{UserID: "user-2", DisplayName: "Other"}

	if err := db.DB.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	rec := performAuthed(t, r, http.MethodPut, "/api/me", `{"display_name":"Hijacked"}`, "user-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var untouched models.UserProfile

	if err := db.DB.Where("user_id = ?", "user-2").First(&untouched).Error; err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}

	if untouched.DisplayName != "Other" {
		t.Errorf("another user's profile was modified: %+v", untouched)
	}
}
