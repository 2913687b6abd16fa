package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quickcut-dev/quickcut/internal/auth"
	"github.com/quickcut-dev/quickcut/internal/router"
)

func dialWebSocket(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	token, err := auth.GenerateJWT(userID, userID+"@example.com")

	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	header := http.Header{
		"Authorization": []string{"Bearer " + token},
		"Origin":        []string{"http://localhost:3000"},
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)

	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}

	return conn
}

func TestWebSocketSendsWelcome(t *testing.T) {
	srv := httptest.NewServer(router.NewRouter())
	t.Cleanup(srv.Close)

	conn := dialWebSocket(t, srv, "user-ws")
	defer conn.Close()

	var welcome struct {
		Type string `json:"type"`
	}

	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("failed to read welcome message: %v", err)
	}

	if welcome.Type != "connected" {
		t.Errorf("expected connected welcome, got %q", welcome.Type)
	}
}

func TestWebSocketGoroutinesExitAfterDisconnect(t *testing.T) {
	srv := httptest.NewServer(router.NewRouter())
	t.Cleanup(srv.Close)

	// One warmup connection so lazily started goroutines do not skew the
	// baseline.
	warm := dialWebSocket(t, srv, "user-ws")

	if _, _, err := warm.ReadMessage(); err != nil {
		t.Fatalf("failed to read welcome message: %v", err)
	}

	warm.Close()
	time.Sleep(200 * time.Millisecond)

	baseline := runtime.NumGoroutine()

	for i := 0; i < 3; i++ {
		conn := dialWebSocket(t, srv, "user-ws")

		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatalf("failed to read welcome message: %v", err)
		}

		conn.Close()
	}

	deadline := time.Now().Add(3 * time.Second)

	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= baseline+1 {
			return
		}

		time.Sleep(50 * time.Millisecond)
	}

	t.Errorf("goroutines did not settle after disconnect: baseline %d, now %d", baseline, runtime.NumGoroutine())
}
