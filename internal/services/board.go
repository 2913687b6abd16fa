package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/quickcut-dev/quickcut/internal/metrics"
)

type boardMutationRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type boardMutationResponse struct {
	Data map[string]struct {
		ID string `json:"id"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	ErrorMessage string `json:"error_message"`
}

var board struct {
	apiURL  string
	token   string
	boardID string
	client  *http.Client
}

// ConfigureBoard wires the Monday.com client. An empty token disables the
// mirror entirely; the portal works without the board.
func ConfigureBoard(apiURL, token, boardID string) {
	board.apiURL = apiURL
	board.token = token
	board.boardID = boardID
	board.client = &http.Client{Timeout: 15 * time.Second}
}

func BoardEnabled() bool {
	return board.apiURL != "" && board.token != ""
}

// CreateBoardItem mirrors a new project as an item on the configured board and
// returns the created item id.
func CreateBoardItem(ctx context.Context, name string) (string, error) {
	if !BoardEnabled() {
		return "", fmt.Errorf("board integration is not configured")
	}

	if board.boardID == "" {
		return "", fmt.Errorf("no board id configured")
	}

	query := `mutation ($boardId: ID!, $name: String!) { create_item (board_id: $boardId, item_name: $name) { id } }`

	return runBoardMutation(ctx, "create_item", query, map[string]interface{}{
		"boardId": board.boardID,
		"name":    name,
	})
}

// CreateBoardNote attaches client feedback as an update on the mirrored item
// and returns the created update id.
func CreateBoardNote(ctx context.Context, itemID string, body string) (string, error) {
	if !BoardEnabled() {
		return "", fmt.Errorf("board integration is not configured")
	}

	query := `mutation ($itemId: ID!, $body: String!) { create_update (item_id: $itemId, body: $body) { id } }`

	return runBoardMutation(ctx, "create_update", query, map[string]interface{}{
		"itemId": itemID,
		"body":   body,
	})
}

// TryCreateBoardItem is the best-effort form of CreateBoardItem: failures are
// logged and swallowed, and nothing is retried. The board mirror is never
// allowed to fail a portal write.
func TryCreateBoardItem(ctx context.Context, name string) string {
	if !BoardEnabled() {
		return ""
	}

	itemID, err := CreateBoardItem(ctx, name)

	if err != nil {
		log.Printf("Failed to mirror project %q to board: %v", name, err)
		metrics.IncBoardMirrorFailure()
		return ""
	}

	return itemID
}

// TryCreateBoardNote is the best-effort form of CreateBoardNote.
func TryCreateBoardNote(ctx context.Context, itemID string, body string) *string {
	if !BoardEnabled() || itemID == "" {
		return nil
	}

	updateID, err := CreateBoardNote(ctx, itemID, body)

	if err != nil {
		log.Printf("Failed to mirror feedback to board item %s: %v", itemID, err)
		metrics.IncBoardMirrorFailure()
		return nil
	}

	return &updateID
}

func runBoardMutation(ctx context.Context, field string, query string, variables map[string]interface{}) (string, error) {
	body, err := json.Marshal(boardMutationRequest{Query: query, Variables: variables})
	if err != nil {
		return "", fmt.Errorf("failed to marshal board mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, board.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to build board request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", board.token)
	req.Header.Set("API-Version", "2024-10")

	resp, err := board.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send board mutation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("board API returned status %d", resp.StatusCode)
	}

	var parsed boardMutationResponse

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode board response: %w", err)
	}

	if parsed.ErrorMessage != "" {
		return "", fmt.Errorf("board API error: %s", parsed.ErrorMessage)
	}

	if len(parsed.Errors) > 0 {
		return "", fmt.Errorf("board API error: %s", parsed.Errors[0].Message)
	}

	result, ok := parsed.Data[field]

	if !ok || result.ID == "" {
		return "", fmt.Errorf("board response missing %s id", field)
	}

	return result.ID, nil
}
