package site

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"

	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

func newTestServer(t *testing.T) (*Server, *Result) {
	t.Helper()
	gen := newTestGenerator(t)
	result, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return NewServer(ServerConfig{Dir: gen.OutputDir}, gen, NewHub(nil), nil), result
}

func TestServerHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestServerNav(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		path     string
		status   int
		sections int
	}{
		{"/api/nav/index.html", http.StatusOK, 3},
		{"/api/nav/", http.StatusOK, 3},
		{"/api/nav/guides/writing.html", http.StatusOK, 2},
		{"/api/nav/missing.html", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.path, nil)
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)

		if w.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.path, w.Code, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		var nav sidebar.Navigation
		if err := json.NewDecoder(w.Body).Decode(&nav); err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		if len(nav.Sections) != tt.sections {
			t.Errorf("%s: sections = %d, want %d", tt.path, len(nav.Sections), tt.sections)
		}
	}
}

func TestServerNavEntryShape(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/api/nav/index.html", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	var nav sidebar.Navigation
	if err := json.NewDecoder(w.Body).Decode(&nav); err != nil {
		t.Fatalf("decode: %v", err)
	}
	first := nav.Sections[0]
	if first.ID != "getting-started-item" || first.Href != "#getting-started" || first.Class != sidebar.ClassHeading {
		t.Errorf("section = %+v", first.Entry)
	}
	if len(first.Items) != 2 || first.Items[1].HeadingID != "first-build" {
		t.Errorf("items = %+v", first.Items)
	}
}

func TestServerManifest(t *testing.T) {
	s, result := newTestServer(t)
	req := httptest.NewRequest("GET", "/api/manifest", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var m Manifest
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.BuildID != result.BuildID || len(m.Pages) != 2 {
		t.Errorf("manifest = %+v", m)
	}
}

func TestServerSearchIndex(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/api/search-index", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	var entries []SearchEntry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 12 {
		t.Errorf("entries = %d, want 12", len(entries))
	}
}

func TestServerStaticFiles(t *testing.T) {
	s, _ := newTestServer(t)
	for _, path := range []string{"/", "/guides/writing.html", "/style.css", "/script.js"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, w.Code)
		}
	}
}

func TestServerNotBuilt(t *testing.T) {
	gen := NewGenerator(t.TempDir(), t.TempDir(), "test")
	s := NewServer(ServerConfig{Dir: gen.OutputDir}, gen, nil, nil)

	for _, path := range []string{"/api/manifest", "/api/nav/index.html", "/api/search-index"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, w.Code)
		}
	}
}

func TestServerCORS(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestHubBroadcast(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(nil)
	ts := httptest.NewServer(hub)
	defer ts.Close()

	hub.Broadcast("build-1")

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if got := readBuildID(t, conn); got != "build-1" {
		t.Errorf("first message = %q, want build-1", got)
	}
	if hub.Clients() != 1 {
		t.Errorf("clients = %d, want 1", hub.Clients())
	}

	hub.Broadcast("build-2")
	if got := readBuildID(t, conn); got != "build-2" {
		t.Errorf("second message = %q, want build-2", got)
	}

	hub.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("read after Close should fail")
	}
	if hub.Clients() != 0 {
		t.Errorf("clients after Close = %d, want 0", hub.Clients())
	}
}

func TestHubCheckOrigin(t *testing.T) {
	tests := []struct {
		name     string
		origin   string
		allowAll bool
		want     bool
	}{
		{"no origin", "", false, true},
		{"localhost", "http://localhost:8080", false, true},
		{"loopback", "http://127.0.0.1:3000", false, true},
		{"foreign", "http://evil.example", false, false},
		{"localhost lookalike", "http://localhost.evil.example", false, false},
		{"foreign with allow all", "http://evil.example", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub(nil, WithAllowAllOrigins(tt.allowAll))
			req := httptest.NewRequest("GET", "/livereload", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := hub.checkOrigin(req); got != tt.want {
				t.Errorf("checkOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	hub := NewHub(nil)
	ts := httptest.NewServer(hub)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	header := http.Header{"Origin": []string{"http://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatal("dial from a foreign origin should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
	if hub.Clients() != 0 {
		t.Errorf("clients = %d, want 0", hub.Clients())
	}
}

func readBuildID(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg reloadMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "reload" {
		t.Errorf("type = %q, want reload", msg.Type)
	}
	return msg.BuildID
}
