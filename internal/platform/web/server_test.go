package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	_ "github.com/vovakirdan/maztic-arcade/internal/games/maztic"
	"github.com/vovakirdan/maztic-arcade/internal/platform/web"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

type frame struct {
	Type    string   `json:"type"`
	Tick    uint64   `json:"tick"`
	Events  []string `json:"events"`
	Screen  []string `json:"screen"`
	Message string   `json:"message"`
	Detail  struct {
		Rows    []string `json:"rows"`
		Toggles int      `json:"toggles"`
		Balls   []struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"balls"`
	} `json:"detail"`
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	cfg := web.DefaultServerConfig()
	cfg.TickRate = 120
	cfg.FrameEvery = 1
	cfg.Logger = quietLogger()

	srv := httptest.NewServer(web.NewServer(cfg, store))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, baseURL, query string) *websocket.Conn {
	t.Helper()

	parsed, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}
	parsed.Scheme = "ws"
	parsed.Path = "/ws"
	parsed.RawQuery = query

	conn, resp, err := websocket.DefaultDialer.Dial(parsed.String(), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	//nolint:errcheck // Test deadline
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("malformed frame %s: %v", payload, err)
	}
	return f
}

func TestSessionStreamsFrames(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv.URL, "seed=42")

	first := readFrame(t, conn)
	if first.Type != "frame" || first.Tick != 0 {
		t.Fatalf("unexpected first frame: type %q tick %d", first.Type, first.Tick)
	}
	if len(first.Screen) != web.DefaultServerConfig().ScreenH {
		t.Errorf("screen has %d rows", len(first.Screen))
	}
	if len(first.Detail.Rows) == 0 || len(first.Detail.Balls) == 0 {
		t.Fatal("frame should carry the maze and its balls")
	}

	second := readFrame(t, conn)
	if second.Tick <= first.Tick {
		t.Errorf("ticks should advance: %d then %d", first.Tick, second.Tick)
	}
}

func TestSessionAppliesActions(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv.URL, "seed=7")
	readFrame(t, conn)

	if err := conn.WriteJSON(map[string]string{"type": "action", "action": "Toggle"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	for range 200 {
		f := readFrame(t, conn)
		for _, e := range f.Events {
			if e == "toggled" {
				if f.Detail.Toggles != 1 {
					t.Errorf("toggles = %d, expected 1", f.Detail.Toggles)
				}
				return
			}
		}
	}
	t.Fatal("toggle never applied")
}

func TestSessionRejectsUnknownAction(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv.URL, "")
	readFrame(t, conn)

	if err := conn.WriteJSON(map[string]string{"type": "action", "action": "Jump"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	for range 200 {
		if f := readFrame(t, conn); f.Type == "error" {
			return
		}
	}
	t.Fatal("expected an error message")
}

func TestUnknownDifficultyRejected(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/ws?difficulty=insane")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestScoresEndpoint(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, score := range []int{120, 480, 300} {
		if _, err := store.SaveScore("maztic", score, score/100); err != nil {
			t.Fatal(err)
		}
	}

	srv := newTestServer(t, store)
	resp, err := http.Get(srv.URL + "/api/scores?limit=2")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var scores []struct {
		Score  int `json:"score"`
		Levels int `json:"levels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 480 || scores[0].Levels != 4 {
		t.Errorf("unexpected scores: %+v", scores)
	}

	noStore := newTestServer(t, nil)
	resp2, err := http.Get(noStore.URL + "/api/levels")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, expected %d", resp2.StatusCode, http.StatusServiceUnavailable)
	}
}
