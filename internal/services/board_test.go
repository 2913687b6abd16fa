package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func configureFakeBoard(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(handler)

	ConfigureBoard(srv.URL, "test-token", "4567")

	t.Cleanup(func() {
		srv.Close()
		ConfigureBoard("", "", "")
	})
}

func TestCreateBoardItem(t *testing.T) {
	var gotAuth, gotVersion string
	var gotPayload struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}

	configureFakeBoard(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("API-Version")

		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"create_item":{"id":"8123456789"}}}`)
	})

	itemID, err := CreateBoardItem(context.Background(), "Podcast episode 12")

	if err != nil {
		t.Fatalf("CreateBoardItem failed: %v", err)
	}

	if itemID != "8123456789" {
		t.Errorf("unexpected item id: %q", itemID)
	}

	if gotAuth != "test-token" {
		t.Errorf("expected token in Authorization header, got %q", gotAuth)
	}

	if gotVersion == "" {
		t.Error("expected API-Version header")
	}

	if !strings.Contains(gotPayload.Query, "create_item") {
		t.Errorf("unexpected query: %q", gotPayload.Query)
	}

	if gotPayload.Variables["boardId"] != "4567" || gotPayload.Variables["name"] != "Podcast episode 12" {
		t.Errorf("unexpected variables: %v", gotPayload.Variables)
	}
}

func TestCreateBoardNote(t *testing.T) {
	configureFakeBoard(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"create_update":{"id":"777000111"}}}`)
	})

	updateID, err := CreateBoardNote(context.Background(), "8123456789", "Looks great")

	if err != nil {
		t.Fatalf("CreateBoardNote failed: %v", err)
	}

	if updateID != "777000111" {
		t.Errorf("unexpected update id: %q", updateID)
	}
}

func TestBoardMutationGraphQLError(t *testing.T) {
	configureFakeBoard(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"errors":[{"message":"ColumnValueException"}]}`)
	})

	_, err := CreateBoardItem(context.Background(), "Broken")

	if err == nil || !strings.Contains(err.Error(), "ColumnValueException") {
		t.Errorf("expected GraphQL error surfaced, got %v", err)
	}
}

func TestBoardMutationHTTPError(t *testing.T) {
	configureFakeBoard(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := CreateBoardItem(context.Background(), "Throttled")

	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestTryCreateBoardItemSwallowsFailure(t *testing.T) {
	configureFakeBoard(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	if got := TryCreateBoardItem(context.Background(), "Best effort"); got != "" {
		t.Errorf("expected empty id on failure, got %q", got)
	}
}

func TestTryCreateBoardNoteSwallowsFailure(t *testing.T) {
	configureFakeBoard(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	if got := TryCreateBoardNote(context.Background(), "8123456789", "note"); got != nil {
		t.Errorf("expected nil update id on failure, got %v", *got)
	}
}

func TestBoardDisabled(t *testing.T) {
	ConfigureBoard("", "", "")

	if BoardEnabled() {
		t.Fatal("expected board disabled without configuration")
	}

	if _, err := CreateBoardItem(context.Background(), "x"); err == nil {
		t.Error("expected error when board is not configured")
	}

	if got := TryCreateBoardItem(context.Background(), "x"); got != "" {
		t.Errorf("expected empty id when disabled, got %q", got)
	}

	if got := TryCreateBoardNote(context.Background(), "1", "x"); got != nil {
		t.Errorf("expected nil update id when disabled, got %v", *got)
	}
}
