package server

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hailam/jmchess/internal/board"
	"github.com/hailam/jmchess/internal/perft"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.AccessLog = nil
	cfg.SquareSize = 20
	s, err := New(cfg, perft.NewRunner(perft.WithThreads(2)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func do(t *testing.T, s *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, body
}

func get(t *testing.T, s *Server, path string, query url.Values) (*http.Response, []byte) {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return do(t, s, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestGetPosition(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/api/position", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var pos PositionResponse
	if err := json.Unmarshal(body, &pos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pos.FEN != board.StartFEN || pos.SideToMove != "white" || pos.Castling != "KQkq" {
		t.Errorf("unexpected position %+v", pos)
	}
	if len(pos.Pieces) != 32 || pos.Pieces["e1"] != "K" || pos.Pieces["d8"] != "q" {
		t.Errorf("pieces = %v", pos.Pieces)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}

	resp, body = get(t, s, "/api/position", url.Values{"fen": {"not a fen"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 (%s)", resp.StatusCode, body)
	}
}

func TestGetMoves(t *testing.T) {
	s := newTestServer(t)

	var out struct {
		Count int            `json:"count"`
		Moves []MoveResponse `json:"moves"`
	}

	_, body := get(t, s, "/api/moves", nil)
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 20 || len(out.Moves) != 20 {
		t.Errorf("count = %d, want 20", out.Count)
	}

	_, body = get(t, s, "/api/moves", url.Values{"from": {"e2"}})
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Moves[1].Move != "e2e4" || out.Moves[1].Tag != "double-push" {
		t.Errorf("moves from e2 = %+v", out.Moves)
	}

	resp, _ := get(t, s, "/api/moves", url.Values{"from": {"z9"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestApplyMove(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		fen    string
	}{
		{"start", `{"move":"e2e4"}`, http.StatusOK, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"castle", `{"fen":"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1","move":"e1g1"}`, http.StatusOK, "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1"},
		{"unavailable", `{"move":"e2e5"}`, http.StatusUnprocessableEntity, ""},
		{"bad notation", `{"move":"e2"}`, http.StatusBadRequest, ""},
		{"missing move", `{}`, http.StatusBadRequest, ""},
		{"bad fen", `{"fen":"x","move":"e2e4"}`, http.StatusBadRequest, ""},
		{"bad json", `{`, http.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/apply", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, body := do(t, s, req)
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tc.status, body)
			}
			if tc.fen == "" {
				return
			}
			var out struct {
				Position PositionResponse `json:"position"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Position.FEN != tc.fen {
				t.Errorf("fen = %q, want %q", out.Position.FEN, tc.fen)
			}
		})
	}
}

func TestGetPerft(t *testing.T) {
	s := newTestServer(t)

	var out struct {
		Nodes  uint64            `json:"nodes"`
		Divide map[string]uint64 `json:"divide"`
	}
	resp, body := get(t, s, "/api/perft", url.Values{"depth": {"2"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d (%s)", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Nodes != 400 || out.Divide["e2e4"] != 20 {
		t.Errorf("perft = %d, divide e2e4 = %d", out.Nodes, out.Divide["e2e4"])
	}

	for _, depth := range []string{"0", "9"} {
		resp, _ := get(t, s, "/api/perft", url.Values{"depth": {depth}})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("depth %s: status = %d, want 400", depth, resp.StatusCode)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/api/render.png", url.Values{"highlight": {"e2,e4"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d (%s)", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 8*20+20 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	resp, _ = get(t, s, "/api/render.png", url.Values{"highlight": {"e2,k9"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
