package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/maumau/config"
	"github.com/minaorangina/maumau/protocol"
	"github.com/minaorangina/maumau/store"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var testConfig = func() config.Config {
	return config.Config{
		Port:              8000,
		HumanName:         "You",
		BotNames:          []string{"Bot 1", "Bot 2"},
		MaxBotTurns:       200,
		LogLevel:          "info",
		AllowedOrigins:    []string{"*"},
		SimulationWorkers: 1,
	}
}

func newTestGameServer(t *testing.T, cfg config.Config) (*GameServer, *store.InMemoryGameStore) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	str := store.NewInMemoryGameStore()
	server := NewServer(str, cfg, logger)
	t.Cleanup(func() { server.Close() })

	return server, str
}

// newTestServer starts and returns a new server.
// It is shut down when the test ends.
func newTestServer(t *testing.T) (*httptest.Server, *store.InMemoryGameStore) {
	t.Helper()

	gs, str := newTestGameServer(t, testConfig())
	server := httptest.NewServer(gs)
	t.Cleanup(server.Close)

	return server, str
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	require.NoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID, playerID string) *http.Request {
	url := "/game/" + gameID
	if playerID != "" {
		url += "?player_id=" + playerID
	}
	request, _ := http.NewRequest(http.MethodGet, url, nil)
	return request
}

func decodeBody(t *testing.T, body io.Reader, into interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(into))
}

// mustCreateGame starts a game on a running server
func mustCreateGame(t *testing.T, serverURL, name string) NewGameRes {
	t.Helper()

	resp, err := http.Post(serverURL+"/new", "application/json", bytes.NewBuffer(mustMakeJson(t, NewGameReq{name})))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got NewGameRes
	decodeBody(t, resp.Body, &got)
	return got
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		body := []byte{}
		code := 0
		if resp != nil {
			body, _ = io.ReadAll(resp.Body)
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

func readMessage(t *testing.T, ws *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg protocol.OutboundMessage
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}
