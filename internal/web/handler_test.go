package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/limiter"
	"github.com/gorilla/websocket"
)

// clientState mirrors the JSON the browser receives.
type clientState struct {
	Type  string `json:"type"`
	State struct {
		BoardSize int     `json:"boardSize"`
		Occupied  []int   `json:"occupied"`
		FoodCell  int     `json:"foodCell"`
		Score     int     `json:"score"`
		Direction string  `json:"direction"`
		Status    string  `json:"status"`
		Rows      [][]int `json:"rows"`
	} `json:"state"`
}

func newTestServer(t *testing.T, connLimiter *limiter.IPLimiter) *httptest.Server {
	t.Helper()
	factory := func(name string) *game.GameManager {
		return game.NewGameManager(game.WithPlayerName(name), game.WithTickDuration(time.Hour))
	}
	srv := httptest.NewServer(NewServer(factory, connLimiter))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?name=tester"
	return websocket.DefaultDialer.Dial(url, nil)
}

func readState(t *testing.T, conn *websocket.Conn) clientState {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg clientState
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "<canvas") {
		t.Error("index page has no canvas")
	}
}

func TestWebSocketStreamsStateAndAcceptsKeys(t *testing.T) {
	srv := newTestServer(t, nil)
	conn, _, err := dial(t, srv)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	first := readState(t, conn)
	if first.Type != "state" {
		t.Fatalf("first message type = %q", first.Type)
	}
	if first.State.BoardSize != 10 || len(first.State.Rows) != 10 {
		t.Errorf("board size %d rows %d", first.State.BoardSize, len(first.State.Rows))
	}
	if first.State.FoodCell != 23 || len(first.State.Occupied) != 1 || first.State.Occupied[0] != 18 {
		t.Errorf("initial food %d occupied %v", first.State.FoodCell, first.State.Occupied)
	}
	if first.State.Direction != "RIGHT" || first.State.Status != "PLAYING" {
		t.Errorf("direction %q status %q", first.State.Direction, first.State.Status)
	}

	if err := conn.WriteJSON(ClientMessage{Key: "ArrowDown"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := readState(t, conn).State.Direction; got != "DOWN" {
		t.Errorf("direction after ArrowDown = %q", got)
	}

	if err := conn.WriteJSON(ClientMessage{Key: "p"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := readState(t, conn).State.Status; got != "PAUSED" {
		t.Errorf("status after p = %q", got)
	}
}

func TestWebSocketConnectionLimit(t *testing.T) {
	srv := newTestServer(t, limiter.NewIPLimiter(1))

	conn, _, err := dial(t, srv)
	if err != nil {
		t.Fatalf("first Dial: %v", err)
	}
	defer conn.Close()
	readState(t, conn)

	_, resp, err := dial(t, srv)
	if err == nil {
		t.Fatal("second connection from the same ip was accepted")
	}
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second connection response = %+v", resp)
	}
}
